// Package validator wraps struct-tag validation for request payloads.
// Failures come back as FieldError values carrying the field-level detail
// the API reports to callers.
package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError describes a single failed field.
type FieldError struct {
	Field string // struct namespace, e.g. "PlaceOrderRequest.Quantity"
	Rule  string // the validation tag that failed
	Param string // the tag parameter, if any
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field '%s' failed on rule '%s=%s'", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("field '%s' failed on rule '%s'", e.Field, e.Rule)
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// uuid.UUID is a [16]byte array, so a bare "required" cannot reject
	// the nil UUID; this rule does.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// ValidateStruct checks data against its validate tags and returns one
// FieldError per failure, outermost field first. A nil return means valid.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "payload", Rule: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
