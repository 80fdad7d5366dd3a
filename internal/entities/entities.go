// Package entities holds the value types the credits index is keyed on. Works and
// participants are immutable and compare by name only: two values with the same name are
// the same key, whatever their other attributes.
package entities

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/guregu/null"

	"github.com/stellar/credits-index/internal/validators"
)

var ErrInvalidEntity = errors.New("invalid entity")

// nullDisplay is what String renders for a missing optional attribute.
const nullDisplay = "null"

var validate = validators.NewValidator()

// identity is the validated part of every entity.
type identity struct {
	Name string `validate:"not_empty"`
}

func validateIdentity(kind, name string) error {
	err := validate.Struct(identity{Name: name})
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return fmt.Errorf("%w: %s: %s", ErrInvalidEntity, kind, validators.FormatFieldErrors(validators.ParseValidationError(vErrs)))
	}
	return fmt.Errorf("validating %s: %w", kind, err)
}

func displayString(s null.String) string {
	if !s.Valid {
		return nullDisplay
	}
	return s.String
}

func displayDate(t null.Time) string {
	if !t.Valid {
		return nullDisplay
	}
	return t.Time.Format(validators.DateLayout)
}
