package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	rules := map[string]validator.Func{
		"iso8601": func(fl validator.FieldLevel) bool {
			_, err := model.ParseISODate(fl.Field().String())
			return err == nil
		},
		// identifier accepts whatever uuid.Parse does, so ids that work in a
		// path work in a body too.
		"identifier": func(fl validator.FieldLevel) bool {
			return uuid.Validate(fl.Field().String()) == nil
		},
		"bookstatus": func(fl validator.FieldLevel) bool {
			return model.BookStatus(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return v
}

// check runs the struct rules and turns failures into field errors, using
// messages keyed by "field.rule" or by "field" alone.
func check(v any, messages map[string]string) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Rule: "invalid", Message: err.Error()}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := baseField(fe.Field())
		fields = append(fields, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: buildMessage(field, fe, messages),
		})
	}
	return fields
}

// baseField strips the element index dive adds ("genre[1]" -> "genre").
func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

func buildMessage(field string, fe validator.FieldError, messages map[string]string) string {
	if m, ok := messages[field+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := messages[field]; ok {
		return m
	}

	if fe.Tag() == "required" {
		return field + " is required"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
