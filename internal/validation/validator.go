package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so error details match request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("date", fixedLayout(DateLayout))
	v.RegisterValidation("clock", fixedLayout(ClockLayout))

	return &Validator{v: v}
}

// fixedLayout accepts values that parse with layout and have exactly its
// width. time.Parse alone lets "9:30" through for "15:04".
func fixedLayout(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok || len(value) != len(layout) {
			return false
		}
		_, err := time.Parse(layout, value)
		return err == nil
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
