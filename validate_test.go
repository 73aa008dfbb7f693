package jvalidate

import (
	"context"
	"testing"

	"github.com/nanlint/jvalidate/compiler"
)

func TestValidateBasicObject(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", `{"name":"ada","age":30}`, true},
		{"missing required", `{"age":30}`, false},
		{"wrong type", `{"name":"ada","age":"thirty"}`, false},
		{"empty name", `{"name":""}`, false},
		{"negative age", `{"name":"ada","age":-1}`, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := ValidateBytes(context.Background(), s, []byte(c.input))
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if res.Valid != c.valid {
				t.Errorf("Valid = %v, want %v; problems = %v", res.Valid, c.valid, res.Problems)
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"oneOf": [
			{"type": "string"},
			{"type": "number", "minimum": 10}
		]
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := []struct {
		input string
		valid bool
	}{
		{`"hello"`, true},
		{`20`, true},
		{`5`, false},  // matches neither (number branch requires >= 10, string branch doesn't apply)
		{`true`, false},
	}
	for _, c := range cases {
		res, err := ValidateBytes(context.Background(), s, []byte(c.input))
		if err != nil {
			t.Fatalf("validate(%s): %v", c.input, err)
		}
		if res.Valid != c.valid {
			t.Errorf("input %s: Valid = %v, want %v", c.input, res.Valid, c.valid)
		}
	}
}

func TestValidateOneOfManyMatches(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"oneOf": [
			{"type": "number"},
			{"minimum": 0}
		]
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res, err := ValidateBytes(context.Background(), s, []byte(`5`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected invalid: instance matches both oneOf branches")
	}
}

func TestValidateIfThenElse(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"if": {"properties": {"kind": {"const": "circle"}}},
		"then": {"required": ["radius"]},
		"else": {"required": ["width", "height"]}
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"circle with radius", `{"kind":"circle","radius":2}`, true},
		{"circle without radius", `{"kind":"circle"}`, false},
		{"rect with dims", `{"kind":"rect","width":1,"height":2}`, true},
		{"rect missing dim", `{"kind":"rect","width":1}`, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := ValidateBytes(context.Background(), s, []byte(c.input))
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if res.Valid != c.valid {
				t.Errorf("Valid = %v, want %v; problems = %v", res.Valid, c.valid, res.Problems)
			}
		})
	}
}

func TestValidateArrayItemsAndUnique(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"type": "array",
		"items": {"type": "integer"},
		"minItems": 2,
		"uniqueItems": true
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := []struct {
		input string
		valid bool
	}{
		{`[1,2,3]`, true},
		{`[1]`, false},
		{`[1,1]`, false},
		{`[1,"two"]`, false},
	}
	for _, c := range cases {
		res, err := ValidateBytes(context.Background(), s, []byte(c.input))
		if err != nil {
			t.Fatalf("validate(%s): %v", c.input, err)
		}
		if res.Valid != c.valid {
			t.Errorf("input %s: Valid = %v, want %v; problems=%v", c.input, res.Valid, c.valid, res.Problems)
		}
	}
}

func TestValidateRefToDefinitions(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"definitions": {
			"positiveInt": {"type": "integer", "minimum": 1}
		},
		"type": "object",
		"properties": {
			"count": {"$ref": "#/definitions/positiveInt"}
		}
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := []struct {
		input string
		valid bool
	}{
		{`{"count":3}`, true},
		{`{"count":0}`, false},
		{`{"count":"three"}`, false},
	}
	for _, c := range cases {
		res, err := ValidateBytes(context.Background(), s, []byte(c.input))
		if err != nil {
			t.Fatalf("validate(%s): %v", c.input, err)
		}
		if res.Valid != c.valid {
			t.Errorf("input %s: Valid = %v, want %v; problems=%v", c.input, res.Valid, c.valid, res.Problems)
		}
	}
}

func TestValidateUnresolvedRef(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{"$ref": "#/definitions/missing"}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	res, err := ValidateBytes(context.Background(), s, []byte(`{}`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.Valid {
		t.Fatalf("expected invalid: unresolved $ref must fail via the dereference sentinel")
	}
	if len(res.Problems) != 1 || res.Problems[0].Code != "schema.dereference" {
		t.Fatalf("expected a single schema.dereference problem, got %v", res.Problems)
	}
}

func TestValidateDependencies(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"dependencies": {
			"creditCard": ["billingAddress"]
		}
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := []struct {
		input string
		valid bool
	}{
		{`{"name":"ada"}`, true},
		{`{"creditCard":"1234","billingAddress":"x"}`, true},
		{`{"creditCard":"1234"}`, false},
	}
	for _, c := range cases {
		res, err := ValidateBytes(context.Background(), s, []byte(c.input))
		if err != nil {
			t.Fatalf("validate(%s): %v", c.input, err)
		}
		if res.Valid != c.valid {
			t.Errorf("input %s: Valid = %v, want %v; problems=%v", c.input, res.Valid, c.valid, res.Problems)
		}
	}
}

func TestValidateBoolSchemas(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	trueSchema, err := comp.CompileBytes([]byte(`true`))
	if err != nil {
		t.Fatalf("compile true: %v", err)
	}
	falseSchema, err := comp.CompileBytes([]byte(`false`))
	if err != nil {
		t.Fatalf("compile false: %v", err)
	}
	res, err := ValidateBytes(context.Background(), trueSchema, []byte(`{"anything":1}`))
	if err != nil || !res.Valid {
		t.Fatalf("true schema should accept anything: %v %v", res, err)
	}
	res, err = ValidateBytes(context.Background(), falseSchema, []byte(`{"anything":1}`))
	if err != nil || res.Valid {
		t.Fatalf("false schema should reject anything: %v %v", res, err)
	}
}
