package schema

import (
	"errors"
	"reflect"
	"testing"
)

type weatherQuery struct {
	Base
	Location string `json:"location" jsonschema:"title=location,description=City to query." validate:"required"`
	Days     int    `json:"days,omitempty" jsonschema:"title=days" validate:"omitempty,min=1,max=14"`
}

func TestGenerate(t *testing.T) {
	s := Generate(weatherQuery{})
	if s == nil {
		t.Fatal("nil schema")
	}
	if s.Type != "object" {
		t.Errorf("expect object schema, got %q", s.Type)
	}
	if _, ok := s.Properties.Get("location"); !ok {
		t.Error("missing location property")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(&weatherQuery{Location: "Paris"}); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
	err := Validate(&weatherQuery{Days: 99})
	if err == nil {
		t.Fatal("expect validation error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expect *ValidationError, got %T", err)
	}
	if len(ve.Fields) != 2 {
		t.Errorf("expect 2 field errors, got %d: %v", len(ve.Fields), ve.Fields)
	}
}

func TestValidateIdempotent(t *testing.T) {
	v := &weatherQuery{Location: "Paris", Days: 3}
	for i := 0; i < 2; i++ {
		if err := Validate(v); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if v.Location != "Paris" || v.Days != 3 {
		t.Error("validation mutated value")
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode(reflect.TypeOf(weatherQuery{}), []byte(`{"location":"Paris"}`))
	if err != nil {
		t.Fatal(err)
	}
	q, ok := got.(*weatherQuery)
	if !ok {
		t.Fatalf("expect *weatherQuery, got %T", got)
	}
	if q.Location != "Paris" {
		t.Errorf("expect Paris, got %q", q.Location)
	}
	if _, err := Decode(reflect.TypeOf(weatherQuery{}), []byte(`{"days":3}`)); err == nil {
		t.Error("expect missing-location error")
	}
	if _, err := Decode(reflect.TypeOf(weatherQuery{}), []byte(`not json`)); err == nil {
		t.Error("expect json error")
	}
}

func TestStringify(t *testing.T) {
	if got := Stringify(NewString("plain")); got != "plain" {
		t.Errorf("expect plain, got %q", got)
	}
	if got := Stringify(&weatherQuery{Location: "Paris"}); got == "" {
		t.Error("expect json text")
	}
}
