package postgres

import (
	"errors"
	"strings"

	internalErrors "github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// Create inserts a new employee. Unique-index violations on email come
// back as ErrDuplicateEmail so the losing side of a concurrent insert
// gets the same answer as the advisory pre-check.
func (r *EmployeeRepository) Create(e *employeeDatamodel.Employee) error {
	if err := r.db.Create(e).Error; err != nil {
		if isDuplicateKey(err) {
			return internalErrors.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetAll() ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.Order("created_at ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.Where("employee_id = ?", employeeID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internalErrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByEmail looks up by lowercased email. A nil result with nil error
// means no match; this feeds the advisory duplicate pre-check.
func (r *EmployeeRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(e *employeeDatamodel.Employee) error {
	result := r.db.Model(&employeeDatamodel.Employee{}).
		Where("employee_id = ?", e.EmployeeID).
		Updates(map[string]interface{}{
			"name":        e.Name,
			"email":       e.Email,
			"mobile":      e.Mobile,
			"designation": e.Designation,
			"gender":      e.Gender,
			"courses":     e.Courses,
			"image":       e.Image,
			"updated_at":  e.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return internalErrors.ErrDuplicateEmail
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internalErrors.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(employeeID string) error {
	result := r.db.Where("employee_id = ?", employeeID).Delete(&employeeDatamodel.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internalErrors.ErrEmployeeNotFound
	}
	return nil
}

// isDuplicateKey covers both the translated gorm error and the raw
// driver messages from postgres and sqlite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
