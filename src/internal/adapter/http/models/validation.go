package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/api-sage/mortgage-quote-service/src/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// validateStruct runs the tag rules and returns a domain.ValidationError
// with one Spanish message per failing field.
func validateStruct(s any, messages map[string]string) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
			fields = append(fields, msg)
			continue
		}
		fields = append(fields, defaultMessage(e))
	}

	return domain.NewValidationError(fields...)
}

func defaultMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "El campo " + e.Field() + " es obligatorio"
	case "gt":
		return "El campo " + e.Field() + " debe ser mayor a " + e.Param()
	case "gte":
		return "El campo " + e.Field() + " debe ser mayor o igual a " + e.Param()
	case "lte":
		return "El campo " + e.Field() + " debe ser menor o igual a " + e.Param()
	case "len":
		return "El campo " + e.Field() + " debe tener " + e.Param() + " caracteres"
	case "min":
		return "El campo " + e.Field() + " debe tener al menos " + e.Param() + " caracteres"
	case "email":
		return "El campo " + e.Field() + " debe ser un correo válido"
	default:
		return "El campo " + e.Field() + " no es válido"
	}
}
