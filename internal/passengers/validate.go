package passengers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrFormCountMismatch means the form set size differs from the booking's
// passenger count
var ErrFormCountMismatch = errors.New("passenger count does not match booking")

// ValidationError identifies the first failing field across the form set.
// Index is zero-based; the message shows it one-based, matching the form.
type ValidationError struct {
	Index int    `json:"index"`
	Field string `json:"field"`
	Tag   string `json:"rule"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("passenger %d: %s", e.Index+1, e.message())
}

func (e *ValidationError) message() string {
	switch e.Field {
	case "FirstName":
		return "first name is required"
	case "LastName":
		return "last name is required"
	case "Age":
		if e.Tag == "required" {
			return "age is required"
		}
		return "age must be between 1 and 120"
	case "Gender":
		return "gender must be Male, Female or Other"
	case "Nationality":
		return "nationality is required"
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// ValidateForms checks every passenger in order and returns the first
// violation, or nil. Text fields are trimmed in place first, so a
// whitespace-only name fails required and the cleaned values are what get
// saved upstream. Nothing is sent upstream while this fails.
func ValidateForms(forms []PassengerForm, expected int) error {
	if len(forms) != expected {
		return fmt.Errorf("%w: expected %d, got %d", ErrFormCountMismatch, expected, len(forms))
	}
	for i := range forms {
		forms[i].trim()
		if err := validate.Struct(forms[i]); err != nil {
			errs, ok := err.(validator.ValidationErrors)
			if !ok || len(errs) == 0 {
				return err
			}
			// validator reports fields in struct order, so the first entry
			// is the first violated field on the form
			first := errs[0]
			return &ValidationError{Index: i, Field: first.StructField(), Tag: first.Tag()}
		}
	}
	return nil
}
