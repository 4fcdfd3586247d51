package employee

import (
	"encoding/json"
	"strings"
	"time"

	errors "github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

// Designation is the closed set of employee roles.
type Designation string

const (
	DesignationHR      Designation = "HR"
	DesignationManager Designation = "Manager"
	DesignationSales   Designation = "Sales"
)

// Gender is the closed set of gender values.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Course is the closed set of course values.
type Course string

const (
	CourseMCA Course = "MCA"
	CourseBCA Course = "BCA"
	CourseBSC Course = "BSC"
)

func Designations() []string {
	return []string{string(DesignationHR), string(DesignationManager), string(DesignationSales)}
}

func Genders() []string {
	return []string{string(GenderMale), string(GenderFemale), string(GenderOther)}
}

func Courses() []string {
	return []string{string(CourseMCA), string(CourseBCA), string(CourseBSC)}
}

// Employee is the domain model returned to callers.
type Employee struct {
	ID          int64     `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Designation string    `json:"designation"`
	Gender      string    `json:"gender"`
	Courses     []string  `json:"courses"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Domain event types published on the in-process bus.
const (
	EventCreated = "employee.created"
	EventUpdated = "employee.updated"
	EventDeleted = "employee.deleted"
)

var (
	ErrNotFound       = errors.ErrEmployeeNotFound
	ErrDuplicateEmail = errors.ErrDuplicateEmail
)

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	raw, _ := json.Marshal(e.Courses)
	return &employeeDatamodel.Employee{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Name:        e.Name,
		Email:       strings.ToLower(e.Email),
		Mobile:      e.Mobile,
		Designation: e.Designation,
		Gender:      e.Gender,
		Courses:     string(raw),
		Image:       e.Image,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(m *employeeDatamodel.Employee) *Employee {
	var courses []string
	if m.Courses != "" {
		_ = json.Unmarshal([]byte(m.Courses), &courses)
	}
	return &Employee{
		ID:          m.ID,
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		Email:       m.Email,
		Mobile:      m.Mobile,
		Designation: m.Designation,
		Gender:      m.Gender,
		Courses:     courses,
		Image:       m.Image,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
