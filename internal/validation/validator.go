package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/util"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in errors use
// the json tag so they match the request body.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Overrides the built-in rule so request validation and the service
	// agree on what a session ID is.
	_ = v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return util.IsULID(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateStruct runs the struct's validate tags.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	return toValidationErrors(v.validate.Struct(s), "")
}

// ValidateSessionID validates a session ID path parameter.
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	return toValidationErrors(v.validate.Var(sessionID, "required,ulid"), "id")
}

func toValidationErrors(err error, field string) domain.ValidationErrors {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{Field: field, Rule: "invalid", Message: err.Error()}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fe.Field()
		if name == "" {
			name = field
		}
		out = append(out, domain.FieldError{
			Field:   name,
			Rule:    fe.Tag(),
			Message: describe(name, fe),
		})
	}
	return out
}

func describe(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "ulid":
		return fmt.Sprintf("%s must be a ULID", name)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", name, fe.Tag())
	}
}
