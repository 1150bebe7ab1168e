// Package validator adapts go-playground/validator to echo.
package validator

import (
	"strings"

	"neighborhood/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a validator with the marketplace rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("portal", func(fl validator.FieldLevel) bool {
		return entity.Portal(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return isCategory(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate checks the struct tags of i.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return &FieldErrors{errs: fieldErrs}
		}

		return errors.WithStack(err)
	}

	return nil
}

// FieldErrors lists the fields that failed validation.
type FieldErrors struct {
	errs validator.ValidationErrors
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.errs))
	for _, fe := range e.errs {
		parts = append(parts, fe.Field()+" failed on '"+fe.Tag()+"'")
	}

	return strings.Join(parts, "; ")
}

// Fields maps each failed field to the rule it broke.
func (e *FieldErrors) Fields() map[string]string {
	fields := make(map[string]string, len(e.errs))
	for _, fe := range e.errs {
		fields[fe.Field()] = fe.Tag()
	}

	return fields
}

func isCategory(s string) bool {
	for _, c := range entity.Categories {
		if c == s {
			return true
		}
	}

	return false
}
