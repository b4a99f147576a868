// Package forms defines the submitted form shapes and their validation rules.
// Each form binds from URL-encoded POST data via gin and validates with
// go-playground/validator, returning field-addressable errors so a page can
// re-render with inline messages instead of failing the request.
package forms

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to its validation messages.
// An empty map means the submission is valid.
type FieldErrors map[string][]string

// Add appends a message to the field's error list.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Valid reports whether no field has errors.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// UniquenessChecker answers whether a username or email is already in use.
// It is implemented by the user repository.
type UniquenessChecker interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

var validate = newValidator()

// newValidator builds the shared validator, reporting fields by their form
// names so errors address the submitted field, not the Go struct field.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// check runs struct validation and converts the result to FieldErrors.
func check(form interface{}) FieldErrors {
	fieldErrs := FieldErrors{}
	err := validate.Struct(form)
	if err == nil {
		return fieldErrs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrs.Add("form", "invalid submission")
		return fieldErrs
	}
	for _, fe := range verrs {
		fieldErrs.Add(fe.Field(), message(fe))
	}
	return fieldErrs
}

// message renders one validation failure as user-facing text.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "eqfield":
		return "Passwords must match."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	default:
		return "Invalid value."
	}
}
