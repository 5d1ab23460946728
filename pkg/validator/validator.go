package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrValidation is the sentinel matched by errors.Is for any ValidationErrors.
var ErrValidation = errors.New("validation failed")

// ValidationError describes one failed rule on one field.
type ValidationError struct {
	TranslationValues map[string]any `json:"-"`
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"-"`
}

// ValidationErrors is a collection of field errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for ValidationErrors.
func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Translate rewrites messages in place using fn. Errors without a
// TranslationKey keep their message.
func (e ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range e {
		if e[i].TranslationKey == "" {
			continue
		}
		e[i].Message = fn(e[i].TranslationKey, e[i].TranslationValues)
	}
}

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ExtractValidationErrors returns the ValidationErrors in err's chain, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

var (
	once     sync.Once
	validate *playground.Validate
)

func instance() *playground.Validate {
	once.Do(func() {
		validate = playground.New(playground.WithRequiredStructEnabled())
		// notblank rejects values that are only whitespace.
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct checks v against its `validate` struct tags.
// Field names in the result follow the `json` tag.
// Returns ValidationErrors on rule failures and a plain error when v
// cannot be validated at all.
func ValidateStruct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validator: %w", err)
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fromFieldError(fe))
	}
	return out
}

func fromFieldError(fe playground.FieldError) ValidationError {
	field := fe.Field()
	values := map[string]any{"field": field}
	if fe.Param() != "" {
		values["param"] = fe.Param()
	}

	var msg string
	switch fe.Tag() {
	case "required", "notblank":
		msg = fmt.Sprintf("%s is required", field)
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		msg = fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}

	return ValidationError{
		Field:             field,
		Message:           msg,
		TranslationKey:    "validation." + fe.Tag(),
		TranslationValues: values,
	}
}
