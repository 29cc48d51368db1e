package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Generate reflects a JSON schema from a value's type. Definitions are
// expanded in place so the result can be handed to a model provider as a
// function-parameters document.
func Generate(v any) *jsonschema.Schema {
	return GenerateType(reflect.TypeOf(v))
}

// GenerateType reflects a JSON schema from a reflect.Type.
func GenerateType(t reflect.Type) *jsonschema.Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	reflector := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return reflector.ReflectFromType(t)
}

// Validate checks v against its `validate` struct tags.
// Returns a *ValidationError carrying field-level diagnostics on failure.
func Validate(v any) error {
	if v == nil {
		return nil
	}
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			ret := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
			for _, fe := range fieldErrs {
				ret.Fields = append(ret.Fields, FieldError{
					Field: fe.Field(),
					Tag:   fe.Tag(),
					Param: fe.Param(),
				})
			}
			return ret
		}
		return err
	}
	return nil
}

// Decode unmarshals raw JSON into a new value of type t and validates it.
// The returned value is a pointer to t.
func Decode(t reflect.Type, raw []byte) (any, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	v := reflect.New(t).Interface()
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "$", Tag: "json", Param: err.Error()}}}
	}
	if err := Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// FieldError is a single field-level validation diagnostic.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s(%s)", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Tag)
}

// ValidationError reports one or more field-level validation failures.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
