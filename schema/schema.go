package schema

import "github.com/nanlint/jvalidate/source"

// Keyword builds the Evaluator for one compiled keyword. NewEvaluator takes
// no arguments: a keyword sees only its own compiled values, never its
// sibling keywords.
type Keyword interface {
	Name() string
	NewEvaluator() Evaluator
}

// Schema is a compiled schema node: either the boolean schema `true`/
// `false`, a $ref indirection, or an object schema with a keyword set.
type Schema struct {
	// Boolean is non-nil for the `true`/`false` schema forms.
	Boolean *bool

	// Ref holds the resolved target for a $ref schema. A $ref with no other
	// keywords (the common case) is represented purely by Ref; Draft-07
	// still allows sibling keywords, which are compiled into Keywords too.
	Ref *SchemaReference

	Keywords []Keyword

	// ID is this schema's canonical URI, set when it declares "$id".
	ID string
}

// NewEvaluator builds a fresh Evaluator for one instance of this schema.
// Called exactly once per instance occurrence, at the point the instance's
// first token is about to be processed.
func (s *Schema) NewEvaluator() Evaluator {
	if s.Boolean != nil {
		if *s.Boolean {
			return AlwaysTrue
		}
		return AlwaysFalse
	}
	if s.Ref != nil && len(s.Keywords) == 0 {
		return s.Ref.NewEvaluator()
	}
	evs := make([]Evaluator, 0, len(s.Keywords)+1)
	if s.Ref != nil {
		evs = append(evs, s.Ref.NewEvaluator())
	}
	for _, kw := range s.Keywords {
		evs = append(evs, kw.NewEvaluator())
	}
	if len(evs) == 0 {
		return AlwaysTrue
	}
	return newConjunctive(evs)
}

// SchemaReference holds a $ref whose target is resolved by the compiler's
// second pass. Resolved starts nil and is patched in place once resolution
// runs, mirroring the teacher's mutable-then-frozen SchemaReference shape
// from the original implementation (see DESIGN.md).
type SchemaReference struct {
	URI      string
	Resolved *Schema
}

// NewEvaluator forwards to the resolved target, or to a sentinel that
// always fails with a dereference problem when resolution never completed.
func (r *SchemaReference) NewEvaluator() Evaluator {
	if r.Resolved == nil {
		return nonexistentSchema{uri: r.URI}
	}
	return r.Resolved.NewEvaluator()
}

type nonexistentSchema struct{ uri string }

func (n nonexistentSchema) Evaluate(tok source.Token, depth int) (Result, ProblemList) {
	return False, ProblemList{{
		Code:    "schema.dereference",
		Path:    tok.Path,
		Keyword: "$ref",
		Params:  map[string]string{"ref": n.uri},
	}}
}
