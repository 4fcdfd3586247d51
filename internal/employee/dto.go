package employee

import (
	"encoding/json"
	"strings"

	errors "github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

// CourseList accepts either a JSON array or a JSON-encoded array string.
// Multipart clients submit courses as a stringified array, so both
// representations have to decode into the same set.
type CourseList []string

func (c *CourseList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*c = direct
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return c.DecodeString(raw)
}

// DecodeString parses a JSON-encoded array string ("[\"BCA\"]") into the list.
func (c *CourseList) DecodeString(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*c = nil
		return nil
	}
	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return err
	}
	*c = decoded
	return nil
}

// CreateEmployeeDTO is the request payload for creating an employee.
type CreateEmployeeDTO struct {
	EmployeeID  string     `json:"employee_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	Designation string     `json:"designation"`
	Gender      string     `json:"gender"`
	Courses     CourseList `json:"courses"`
	Image       string     `json:"image,omitempty"`
}

// Validate runs the full rule set. Every field is evaluated so the
// response lists all violations at once.
func (dto CreateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required()
	v.Field("name", dto.Name).Required().MinLength(2)
	// A blank email is reported as a format error, not a missing field.
	v.Field("email", dto.Email).Email()
	v.Field("mobile", dto.Mobile).Digits(10)
	v.Field("designation", dto.Designation).Required().OneOf(Designations()...)
	v.Field("gender", dto.Gender).OneOf(Genders()...)
	v.Field("courses", []string(dto.Courses)).EachOneOf(Courses()...)
	v.Field("image", dto.Image).ImageFile()
	return v.Validate()
}

// UpdateEmployeeDTO is the request payload for updating an employee.
// The business id in the URL wins; employee_id and created_at never change.
type UpdateEmployeeDTO struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	Designation string     `json:"designation"`
	Gender      string     `json:"gender"`
	Courses     CourseList `json:"courses"`
	Image       string     `json:"image,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MinLength(2)
	v.Field("email", dto.Email).Email()
	v.Field("mobile", dto.Mobile).Digits(10)
	v.Field("designation", dto.Designation).Required().OneOf(Designations()...)
	v.Field("gender", dto.Gender).OneOf(Genders()...)
	v.Field("courses", []string(dto.Courses)).EachOneOf(Courses()...)
	v.Field("image", dto.Image).ImageFile()
	return v.Validate()
}
