package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// validateStruct runs the struct tags of s and appends every failure to ve,
// skipping fields that were already reported.
func validateStruct(s any, ve *ValidationError) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		ve.Add("_", err.Error())
		return
	}

	reported := make(map[string]bool, len(ve.Details))
	for _, d := range ve.Details {
		reported[d.Field] = true
	}
	for _, fe := range errs {
		field := fieldPath(fe)
		if reported[field] {
			continue
		}
		reported[field] = true
		ve.Add(field, validationMessage(fe))
	}
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String && fe.Param() == "1" {
			return "must not be empty"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// ValidateProductInput checks a create (requireAll) or update payload.
func ValidateProductInput(in ProductInput, requireAll bool) error {
	ve := &ValidationError{}
	if requireAll {
		if in.Name == nil {
			ve.Add("name", "is required")
		}
		if in.Category == nil {
			ve.Add("category", "is required")
		}
	}
	validateStruct(in, ve)
	return ve.OrNil()
}
