// Package validator validates request payloads.
//
// Struct validation uses go-playground/validator tags and reports field names
// by their JSON tag:
//
//	type request struct {
//	    To string `json:"to" validate:"required,email"`
//	}
//
//	if err := validator.ValidateStruct(req); validator.IsValidationError(err) {
//	    ve := validator.ExtractValidationErrors(err)
//	    // ve[0].Field == "to"
//	}
//
// Cross-field constraints use rules:
//
//	err := validator.Apply(
//	    validator.RequiredString("content", in.Content),
//	    validator.When(isEmail, validator.RequiredString("subject", in.Subject)),
//	)
package validator
