package employee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/core/events"
)

// Repository defines the data access methods for employees.
type Repository interface {
	Create(e *employeeDatamodel.Employee) error
	GetAll() ([]*employeeDatamodel.Employee, error)
	GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
	GetByEmail(email string) (*employeeDatamodel.Employee, error)
	Update(e *employeeDatamodel.Employee) error
	Delete(employeeID string) error
}

// Service handles employee business logic.
type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Create validates the candidate, runs the advisory duplicate-email
// pre-check and persists. The unique index on email remains the
// authoritative guard: a concurrent insert that slips past the pre-check
// surfaces as ErrDuplicateEmail from the storage layer instead.
func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err.GetDetailedMessage())
		return nil, err
	}

	email := strings.ToLower(dto.Email)
	if existing, err := s.repo.GetByEmail(email); err != nil {
		return nil, errors.NewInternalError("failed to check for duplicate email", err)
	} else if existing != nil {
		s.logger.Warn("duplicate email on create", "email", email)
		return nil, ErrDuplicateEmail
	}

	now := time.Now()
	emp := &Employee{
		EmployeeID:  dto.EmployeeID,
		Name:        dto.Name,
		Email:       email,
		Mobile:      dto.Mobile,
		Designation: dto.Designation,
		Gender:      dto.Gender,
		Courses:     dto.Courses,
		Image:       dto.Image,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	model := ToDataModel(emp)
	if err := s.repo.Create(model); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to create employee", err)
	}
	emp.ID = model.ID

	s.publish(ctx, EventCreated, emp)
	s.logger.Info("employee created", "employee_id", emp.EmployeeID, "email", emp.Email)
	return emp, nil
}

// GetAll returns every employee, unpaginated, matching the legacy contract.
func (s *Service) GetAll() ([]*Employee, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, errors.NewInternalError("failed to list employees", err)
	}

	employees := make([]*Employee, 0, len(models))
	for _, m := range models {
		employees = append(employees, FromDataModel(m))
	}
	return employees, nil
}

func (s *Service) GetByEmployeeID(employeeID string) (*Employee, error) {
	model, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to get employee", err)
	}
	return FromDataModel(model), nil
}

// Update re-validates the candidate and overwrites mutable fields.
// employee_id and created_at are immutable.
func (s *Service) Update(ctx context.Context, employeeID string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed on update", "employee_id", employeeID, "error", err.GetDetailedMessage())
		return nil, err
	}

	model, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to get employee", err)
	}

	current := FromDataModel(model)
	current.Name = dto.Name
	current.Email = strings.ToLower(dto.Email)
	current.Mobile = dto.Mobile
	current.Designation = dto.Designation
	current.Gender = dto.Gender
	current.Courses = dto.Courses
	if dto.Image != "" {
		current.Image = dto.Image
	}
	current.UpdatedAt = time.Now()

	updated := ToDataModel(current)
	updated.CreatedAt = model.CreatedAt
	if err := s.repo.Update(updated); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.NewInternalError("failed to update employee", err)
	}

	s.publish(ctx, EventUpdated, current)
	s.logger.Info("employee updated", "employee_id", employeeID)
	return current, nil
}

// Delete permanently removes the record. The is_active flag is a legacy
// field and takes no part here; delete is a hard delete.
func (s *Service) Delete(ctx context.Context, employeeID string) error {
	if err := s.repo.Delete(employeeID); err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			return appErr
		}
		return errors.NewInternalError("failed to delete employee", err)
	}

	s.publish(ctx, EventDeleted, &Employee{EmployeeID: employeeID})
	s.logger.Info("employee deleted", "employee_id", employeeID)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, emp *Employee) {
	if s.bus == nil {
		return
	}
	event := events.NewEvent(eventType, map[string]interface{}{
		"employee_id": emp.EmployeeID,
		"email":       emp.Email,
	})
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Warn("event dispatch failed", "event_type", eventType, "error", err)
	}
}
