// Package validation turns validator struct-tag failures into field errors
// keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Errors collects every failed field of one validation pass.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Error())
	}
	return strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *Errors) Add(field, reason string) {
	*e = append(*e, FieldError{Field: field, Reason: reason})
}

// Err returns nil when no errors were collected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// As extracts field errors from err, if it carries any.
func As(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		return Errors{fieldErr}, true
	}
	return nil, false
}

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = field.Tag.Get("yaml")
				name = strings.SplitN(name, ",", 2)[0]
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// Struct validates v against its validate tags. It returns Errors or nil.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	result := make(Errors, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, FieldError{Field: fieldPath(fieldErr), Reason: reason(fieldErr)})
	}
	return result
}

// Var validates a single value against a tag expression.
func Var(field string, value any, tag string) error {
	err := instance().Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	return Errors{{Field: field, Reason: reason(validationErrs[0])}}
}

func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return fieldErr.Field()
}

func reason(fieldErr validator.FieldError) string {
	param := fieldErr.Param()
	switch fieldErr.Tag() {
	case "required", "required_with", "required_without":
		return "is required"
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", param)
		}
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", param)
		}
		return fmt.Sprintf("must be at most %s", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "gte":
		return fmt.Sprintf("must be %s or greater", param)
	case "lte":
		return fmt.Sprintf("must be %s or less", param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "unique":
		return "must not contain duplicates"
	default:
		return "is invalid"
	}
}
