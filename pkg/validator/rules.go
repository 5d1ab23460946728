package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule is a single imperative check. Use it for constraints that depend on
// other fields and cannot be expressed as struct tags.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates rules in order and returns ValidationErrors for every
// failed rule, or nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// When returns r if cond is true and an always-passing rule otherwise.
func When(cond bool, r Rule) Rule {
	if cond {
		return r
	}
	return Rule{Check: func() bool { return true }}
}

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("%s is required", field),
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// EmptyString fails when value holds anything but whitespace.
func EmptyString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) == "" },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("%s must be empty", field),
			TranslationKey:    "validation.empty",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MaxLenString fails when value is longer than max runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("%s must not exceed %d characters", field, max),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": max},
		},
	}
}
