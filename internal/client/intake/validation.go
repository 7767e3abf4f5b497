package intake

import (
	"reflect"
	"sort"
	"strings"

	"taller_flota/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their form name
// and knows the "plate" rule.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("plate", isPlate)
	return v
}

func isPlate(fl validator.FieldLevel) bool {
	return entities.ValidPlate(entities.NormalizePlate(fl.Field().String()))
}

// ValidationError lists the form fields that failed local validation. No
// request is sent when it is returned.
type ValidationError struct {
	Fields []string
	Err    validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return "complete los campos obligatorios: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	seen := make(map[string]bool, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if !seen[fe.Field()] {
			seen[fe.Field()] = true
			fields = append(fields, fe.Field())
		}
	}
	sort.Strings(fields)
	return &ValidationError{Fields: fields, Err: verrs}
}
