package services

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/checkfox/go_carprice/internal/models"
)

// ValidationResult represents the outcome of validating a form draft
type ValidationResult struct {
	Valid         bool
	MissingFields []models.Field
	Message       string
}

// Validator provides form draft validation.
// The only rule is presence: every field must be non-empty. Values are not
// trimmed and numeric fields are not range checked.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	v := validator.New()
	// Report the form key instead of the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})

	return &Validator{
		validate: v,
	}
}

// ValidateDraft checks the draft and returns a single aggregate message when incomplete
func (v *Validator) ValidateDraft(draft models.FormDraft) *ValidationResult {
	result := &ValidationResult{
		Valid: true,
	}

	err := v.validate.Struct(draft)
	if err == nil {
		return result
	}

	result.Valid = false
	result.Message = models.MessageIncompleteForm

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if f, parseErr := models.ParseField(fe.Field()); parseErr == nil {
				result.MissingFields = append(result.MissingFields, f)
			}
		}
	} else {
		// Unexpected validator failure: fall back to a direct presence check
		result.MissingFields = draft.EmptyFields()
	}

	return result
}

// Validate returns a *models.ValidationError when the draft is incomplete
func (v *Validator) Validate(draft models.FormDraft) error {
	result := v.ValidateDraft(draft)
	if result.Valid {
		return nil
	}
	return models.NewValidationError(result.MissingFields)
}
