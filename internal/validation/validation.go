// Package validation wraps go-playground/validator behind the small
// Violations map the handlers report to clients. All broken rules for a
// payload surface at once, keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Violations maps a field to the rule it broke.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance, configured to report
// fields by their JSON tag name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Check validates a struct and returns every violated rule. A nil return
// means the payload passed.
func Check(v any) Violations {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	out := Violations{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = ruleMessage(fe)
		}
		return out
	}
	out["payload"] = "invalid"
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must not be empty"
	default:
		return "invalid"
	}
}
