package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"productform/internal/models"
)

// Schema validates a draft against the validate struct tags declared on
// models.Product and maps each tag failure to the same message Manual uses.
type Schema struct {
	validate *validator.Validate
}

// NewSchema builds a Schema with the product-specific tags registered.
func NewSchema() (*Schema, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so errors share keys with Manual.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return !blank(fl.Field().String())
		},
		"jsonnumber": func(fl validator.FieldLevel) bool {
			_, ok := parseNumber(json.Number(fl.Field().String()))
			return ok
		},
		"jsonint": func(fl validator.FieldLevel) bool {
			_, ok := parseInteger(json.Number(fl.Field().String()))
			return ok
		},
		"nonnegative": func(fl validator.FieldLevel) bool {
			f, ok := parseNumber(json.Number(fl.Field().String()))
			return ok && f >= 0
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}

	return &Schema{validate: v}, nil
}

// Validate returns the errors of p.
func (s *Schema) Validate(p models.Product) models.FieldErrors {
	errs := models.FieldErrors{}
	err := s.validate.Struct(p)
	if err == nil {
		return errs
	}

	// validator stops at the first failing tag of a field, so each field
	// appears at most once.
	for _, fe := range err.(validator.ValidationErrors) {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "notblank":
		if field == models.FieldImages {
			return MsgImagesRequired
		}
		return MsgNameRequired
	case "max":
		max, err := strconv.Atoi(fe.Param())
		if err == nil {
			return tooLong(field, max)
		}
	case "jsonnumber":
		return notNumber(field)
	case "jsonint":
		return notInteger(field)
	case "nonnegative":
		return negative(field)
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", field, fe.Tag())
}
