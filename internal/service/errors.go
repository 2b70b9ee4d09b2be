package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUploadFailed       = errors.New("image upload failed")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrFetchFailed        = errors.New("fetch failed")
	ErrSearchFailed       = errors.New("search failed")
	ErrInvalidContact     = errors.New("invalid contact message")
	ErrContactFailed      = errors.New("contact message failed")
)

// ValidationError lists the request fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func (e *ValidationError) add(field string) {
	for _, f := range e.Fields {
		if f == field {
			return
		}
	}
	e.Fields = append(e.Fields, field)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// newValidator reports fields by their wire names instead of Go names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// collect folds validator output into verr. Errors that are not field
// failures are returned unchanged.
func collect(err error, verr *ValidationError) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		verr.add(fe.Field())
	}
	return nil
}
