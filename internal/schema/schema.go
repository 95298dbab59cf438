// ABOUTME: Shared field-rule validation for all dashboard entities
// ABOUTME: Runs identically before client submission and before server persistence

package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a JSON field name to a human-readable reason the field was
// rejected. A nil map means the candidate passed every declared rule.
type Violations map[string]string

// Fields returns the names of the offending fields.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return fields
}

// phoneRegex accepts exactly ten digits, matching the dashboard forms.
var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the wire field names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// phone: exactly ten digits.
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering phone rule: %v", err))
	}

	return v
}

// Validate checks an entity against the rules declared on its struct tags.
// It returns nil when the entity is valid, otherwise a Violations map naming
// every offending field. The same call gates form submission on the client
// and persistence on the server.
func Validate(entity any) Violations {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Non-struct input is a programming error, not user input.
		panic(fmt.Sprintf("schema: cannot validate %T: %v", entity, err))
	}

	violations := make(Violations, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations[fieldName(fe)] = message(fe)
	}
	return violations
}

// fieldName strips the root struct name from the error namespace, keeping
// nested paths like "stat[0].yearlySalesTotal" intact.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// message renders a rule failure as actionable text for the form.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a 10-digit phone number"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gt":
		if fe.Param() == "0" {
			return "must be a positive number"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	default:
		return "is invalid"
	}
}
