package compiler

import (
	"errors"
	"testing"
)

func TestCompileBooleanSchemas(t *testing.T) {
	c := New(Options{})
	s, err := c.CompileBytes([]byte(`true`))
	if err != nil {
		t.Fatalf("compile true: %v", err)
	}
	if s.Boolean == nil || !*s.Boolean {
		t.Fatalf("expected boolean true schema")
	}

	s, err = c.CompileBytes([]byte(`false`))
	if err != nil {
		t.Fatalf("compile false: %v", err)
	}
	if s.Boolean == nil || *s.Boolean {
		t.Fatalf("expected boolean false schema")
	}
}

func TestCompileRejectsMalformedJSON(t *testing.T) {
	c := New(Options{})
	_, err := c.CompileBytes([]byte(`{not json`))
	if err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
	var be *BuilderError
	if !errors.As(err, &be) {
		t.Fatalf("expected a *BuilderError, got %T: %v", err, err)
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	c := New(Options{})
	_, err := c.CompileBytes([]byte(`{"pattern": "("}`))
	if err == nil {
		t.Fatalf("expected an error for an invalid regex")
	}
}

func TestCompileRejectsDuplicateID(t *testing.T) {
	c := New(Options{})
	_, err := c.CompileBytes([]byte(`{
		"$id": "urn:dup",
		"properties": {
			"a": {"$id": "urn:dup"}
		}
	}`))
	if err == nil {
		t.Fatalf("expected an error for duplicate $id")
	}
	var re *ReferenceError
	if !errors.As(err, &re) {
		t.Fatalf("expected a *ReferenceError, got %T: %v", err, err)
	}
}

func TestCompileKeepsUnresolvedRefAsNonexistentSentinel(t *testing.T) {
	c := New(Options{})
	s, err := c.CompileBytes([]byte(`{"$ref": "#/definitions/nope"}`))
	if err != nil {
		t.Fatalf("expected unresolved $ref to compile successfully, got: %v", err)
	}
	if s.Ref == nil || s.Ref.Resolved != nil {
		t.Fatalf("expected an unresolved $ref reference left for the sentinel to catch")
	}
}

func TestCompileStrictFormatRejectsUnknownName(t *testing.T) {
	c := New(Options{StrictFormat: true})
	_, err := c.CompileBytes([]byte(`{"format": "not-a-real-format"}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown format name in strict mode")
	}
	var be *BuilderError
	if !errors.As(err, &be) {
		t.Fatalf("expected a *BuilderError, got %T: %v", err, err)
	}
}

func TestCompileLaxFormatAcceptsUnknownName(t *testing.T) {
	c := New(Options{})
	if _, err := c.CompileBytes([]byte(`{"format": "not-a-real-format"}`)); err != nil {
		t.Fatalf("expected an unknown format name to compile in lax mode, got: %v", err)
	}
}

func TestCompileStrictFormatAcceptsKnownName(t *testing.T) {
	c := New(Options{StrictFormat: true})
	if _, err := c.CompileBytes([]byte(`{"format": "date-time"}`)); err != nil {
		t.Fatalf("expected a known format name to compile in strict mode, got: %v", err)
	}
}

func TestCompileRejectsEmptyEnum(t *testing.T) {
	c := New(Options{})
	if _, err := c.CompileBytes([]byte(`{"enum": []}`)); err == nil {
		t.Fatalf("expected an error for an empty enum")
	}
}

func TestCompileRejectsDuplicateEnumValues(t *testing.T) {
	c := New(Options{})
	if _, err := c.CompileBytes([]byte(`{"enum": [1, 2, 1]}`)); err == nil {
		t.Fatalf("expected an error for duplicate enum values")
	}
}

func TestCompileRejectsEmptyRequired(t *testing.T) {
	c := New(Options{})
	if _, err := c.CompileBytes([]byte(`{"required": []}`)); err == nil {
		t.Fatalf("expected an error for an empty required list")
	}
}

func TestCompileRejectsDuplicateRequiredNames(t *testing.T) {
	c := New(Options{})
	if _, err := c.CompileBytes([]byte(`{"required": ["a", "b", "a"]}`)); err == nil {
		t.Fatalf("expected an error for duplicate required names")
	}
}

func TestCompileRejectsEmptyCombinators(t *testing.T) {
	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		c := New(Options{})
		if _, err := c.CompileBytes([]byte(`{"` + kw + `": []}`)); err == nil {
			t.Fatalf("expected an error for empty %s", kw)
		}
	}
}

func TestCompileRejectsNonPositiveMultipleOf(t *testing.T) {
	for _, v := range []string{"0", "-1", "-0.5"} {
		c := New(Options{})
		if _, err := c.CompileBytes([]byte(`{"multipleOf": ` + v + `}`)); err == nil {
			t.Fatalf("expected an error for multipleOf %s", v)
		}
	}
	c := New(Options{})
	if _, err := c.CompileBytes([]byte(`{"multipleOf": 2}`)); err != nil {
		t.Fatalf("expected a positive multipleOf to compile, got: %v", err)
	}
}

func TestCompileRejectsNegativeSizes(t *testing.T) {
	for _, kw := range []string{"minLength", "maxLength", "minItems", "maxItems", "minProperties", "maxProperties", "minContains", "maxContains"} {
		c := New(Options{})
		if _, err := c.CompileBytes([]byte(`{"` + kw + `": -1}`)); err == nil {
			t.Fatalf("expected an error for negative %s", kw)
		}
	}
}

func TestCompileBuildsAnnotationKeywords(t *testing.T) {
	c := New(Options{})
	s, err := c.CompileBytes([]byte(`{
		"title": "a title",
		"description": "a description",
		"default": 42,
		"examples": [1, 2],
		"$comment": "a comment"
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(s.Keywords) != 5 {
		t.Fatalf("expected 5 annotation keywords, got %d", len(s.Keywords))
	}
}

func TestCompileValidatesUnreferencedDefinitions(t *testing.T) {
	c := New(Options{})
	_, err := c.CompileBytes([]byte(`{
		"definitions": {
			"bad": {"pattern": "("}
		}
	}`))
	if err == nil {
		t.Fatalf("expected an unreferenced but malformed definitions entry to fail at compile time")
	}
}

func TestCompileNestedCombinators(t *testing.T) {
	c := New(Options{})
	s, err := c.CompileBytes([]byte(`{
		"allOf": [
			{"type": "object"},
			{"required": ["a"]}
		],
		"not": {"required": ["b"]}
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(s.Keywords) != 2 {
		t.Fatalf("expected 2 compiled keywords (allOf, not), got %d", len(s.Keywords))
	}
}
