package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const sep = " and "

type Error struct {
	FailedField string
	Tag         string
	Value       interface{}
}

type Validator interface {
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
}

func New() Validator {
	v := validator.New()

	// report json field names back to the client, not Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &XValidator{validator: v}
}

func (x *XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, Error{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}

	return validationErrors
}

// Message renders one client-visible line for a set of validation errors,
// applying format to each failed field.
func Message(format string, errs []Error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, fmt.Sprintf(format, err.FailedField))
	}

	return strings.Join(msgs, sep)
}
