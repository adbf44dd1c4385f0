package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-appointment-flow/internal/country"
)

// New returns a validator that reports fields by their JSON names.
// The "country" tag accepts the codes configured in the country package.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("country", func(fl validatorv10.FieldLevel) bool {
		return country.Code(fl.Field().String()).Valid()
	})
	return v
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Messages turns a validation error into one human readable message per failed rule.
func Messages(err error) []string {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validatorv10.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return field + " must be a positive integer"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "country":
		return field + " must be one of " + strings.Join(country.Strings(), ", ")
	case "oneof":
		return field + " must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return field + " is invalid"
}
