// Package validation implements pure field validation. Every field
// registered on a builder is evaluated; nothing short-circuits across
// fields, so the caller always sees the complete set of violations.
package validation

import (
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	errors "github.com/frahmantamala/employee-management/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationError(message, code)
}

// Required fails with EMPTY_FIELD when a string value is blank.
func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if strings.TrimSpace(v) == "" {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeEmptyField)
			}
		}
		return nil
	})
	return fv
}

// MinLength fails with EMPTY_FIELD when the value is shorter than min,
// matching the legacy behavior of treating too-short names as missing.
func (fv *FieldValidator) MinLength(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if len(v) < min {
				message := fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min)
				return fv.fail(message, errors.ErrCodeEmptyField)
			}
		}
		return nil
	})
	return fv
}

// Email fails with INVALID_FORMAT when the value is not a syntactically
// valid address.
func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			addr, err := mail.ParseAddress(v)
			if err != nil || addr.Address != v {
				return fv.fail("Invalid email format", errors.ErrCodeInvalidFormat)
			}
		}
		return nil
	})
	return fv
}

// Digits fails with INVALID_FORMAT unless the value is exactly n ASCII digits.
func (fv *FieldValidator) Digits(n int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok {
			return nil
		}
		if len(v) != n {
			return fv.fail(fmt.Sprintf("%s must be %d digits", fv.FieldName, n), errors.ErrCodeInvalidFormat)
		}
		for _, c := range v {
			if c < '0' || c > '9' {
				return fv.fail(fmt.Sprintf("%s must be %d digits", fv.FieldName, n), errors.ErrCodeInvalidFormat)
			}
		}
		return nil
	})
	return fv
}

// OneOf fails with INVALID_ENUM when the value is outside the closed set.
func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		message := fmt.Sprintf("%s must be one of %s", fv.FieldName, strings.Join(allowed, ", "))
		return fv.fail(message, errors.ErrCodeInvalidEnum)
	})
	return fv
}

// EachOneOf validates every element of a []string against the closed set
// and fails with EMPTY_COLLECTION when the slice is empty.
func (fv *FieldValidator) EachOneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		vs, ok := value.([]string)
		if !ok {
			return nil
		}
		for _, v := range vs {
			found := false
			for _, a := range allowed {
				if v == a {
					found = true
					break
				}
			}
			if !found {
				message := fmt.Sprintf("%s entries must be one of %s", fv.FieldName, strings.Join(allowed, ", "))
				return fv.fail(message, errors.ErrCodeInvalidEnum)
			}
		}
		if len(vs) == 0 {
			return fv.fail(fmt.Sprintf("at least one %s must be selected", fv.FieldName), errors.ErrCodeEmptyCollection)
		}
		return nil
	})
	return fv
}

// ImageFile fails with INVALID_FORMAT when a non-empty filename does not
// carry a jpg/jpeg/png suffix. Empty values pass; the field is optional.
func (fv *FieldValidator) ImageFile() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		switch strings.ToLower(filepath.Ext(v)) {
		case ".jpg", ".jpeg", ".png":
			return nil
		}
		return fv.fail("Image must be jpg or png", errors.ErrCodeInvalidFormat)
	})
	return fv
}

// Password fails with EMPTY_FIELD when blank and TOO_SHORT under min characters.
func (fv *FieldValidator) Password(min int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok {
			return nil
		}
		if v == "" {
			return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeEmptyField)
		}
		if len(v) < min {
			return fv.fail(fmt.Sprintf("%s must be at least %d characters", fv.FieldName, min), errors.ErrCodeTooShort)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every registered field. Within a field the first failing
// rule supplies the reason; across fields all violations are collected.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: err.Message,
					Code:    string(err.Code),
				})
				break
			}
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}
