package schema

import (
	"github.com/nanlint/jvalidate/problem"
	"github.com/nanlint/jvalidate/source"
)

// Result is the tri-state (really four-state) outcome of one evaluation
// step: an evaluator stays PENDING across tokens until it can commit to
// TRUE or FALSE, or discovers it never applied at all (IGNORED).
type Result int

const (
	Pending Result = iota
	True
	False
	Ignored
)

// Evaluator consumes one token at a time against a single schema instance.
// depth is relative to the evaluator's own root token: 0 is the token that
// opened (or, for a primitive, constitutes) the instance being evaluated.
// Combinators such as allOf pass depth through unchanged; items and
// properties forward an element's tokens to its evaluator at depth-1.
type Evaluator interface {
	Evaluate(tok source.Token, depth int) (Result, problem.List)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(tok source.Token, depth int) (Result, problem.List)

func (f EvaluatorFunc) Evaluate(tok source.Token, depth int) (Result, problem.List) {
	return f(tok, depth)
}

// alwaysTrue/alwaysFalse implement the engine's optimization for schemas
// that can never do anything else: the `true`/`false` boolean schemas, and
// an empty keyword set.
type alwaysResult Result

func (a alwaysResult) Evaluate(tok source.Token, depth int) (Result, problem.List) {
	return Result(a), nil
}

var AlwaysTrue Evaluator = alwaysResult(True)
var AlwaysFalse Evaluator = func() Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, problem.List) {
		return False, problem.List{{Code: "false_schema", Path: tok.Path}}
	})
}()

// InstanceTypeOf classifies the token that opens or constitutes an
// instance. Containers are classified from their Begin token; primitives
// from their own token.
func InstanceTypeOf(tok source.Token) InstanceType {
	switch tok.Kind {
	case source.BeginObject:
		return TypeObject
	case source.BeginArray:
		return TypeArray
	case source.String:
		return TypeString
	case source.Bool:
		return TypeBoolean
	case source.Null:
		return TypeNull
	case source.Number:
		if IsInteger(tok.Number) {
			return TypeInteger
		}
		return TypeNumber
	}
	return TypeNull
}

// IsContainerOpen reports whether tok begins a container value.
func IsContainerOpen(tok source.Token) bool {
	return tok.Kind == source.BeginObject || tok.Kind == source.BeginArray
}

// IsPrimitive reports whether tok is a complete, self-contained value.
func IsPrimitive(tok source.Token) bool {
	switch tok.Kind {
	case source.String, source.Number, source.Bool, source.Null:
		return true
	}
	return false
}
