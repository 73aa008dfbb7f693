package schema

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/nanlint/jvalidate/source"
)

// Type implements the "type" keyword, a set of one or more allowed
// instance types (Draft-07 permits both a single string and an array).
type Type struct{ Types []InstanceType }

func (Type) Name() string { return "type" }

func (k Type) NewEvaluator() Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		got := InstanceTypeOf(tok)
		for _, t := range k.Types {
			if t == got {
				return True, nil
			}
			// "number" accepts an integer-valued instance too.
			if t == TypeNumber && got == TypeInteger {
				return True, nil
			}
		}
		expected := ""
		for i, t := range k.Types {
			if i > 0 {
				expected += ", "
			}
			expected += string(t)
		}
		return False, ProblemList{{Code: "type", Path: tok.Path, Keyword: "type", Params: map[string]string{"expected": expected}}}
	})
}

// Enum implements the "enum" keyword: the instance must structurally equal
// one of the listed values. Materializing one candidate instance value to
// compare is the narrow, unavoidable exception to "no tree materialization"
// — schema-side constants are already fully materialized at compile time.
type Enum struct{ Values []Value }

func (Enum) Name() string { return "enum" }

func (k Enum) NewEvaluator() Evaluator {
	return newMaterializingEvaluator(func(v Value, path string) (Result, ProblemList) {
		for _, want := range k.Values {
			if DeepEqual(v, want) {
				return True, nil
			}
		}
		return False, ProblemList{{Code: "enum", Path: path, Keyword: "enum"}}
	})
}

// Const implements "const" as the degenerate single-value case of enum,
// following the original implementation's treatment of Const as an Enum
// subclass (see SPEC_FULL.md).
type Const struct{ Value Value }

func (Const) Name() string { return "const" }

func (k Const) NewEvaluator() Evaluator {
	return newMaterializingEvaluator(func(v Value, path string) (Result, ProblemList) {
		if DeepEqual(v, k.Value) {
			return True, nil
		}
		return False, ProblemList{{Code: "const", Path: path, Keyword: "const"}}
	})
}

// numeric assertions: each is IGNORED for any non-number instance.

type Minimum struct{ Limit string }

func (Minimum) Name() string { return "minimum" }
func (k Minimum) NewEvaluator() Evaluator {
	return numericAssertion("minimum", k.Limit, func(v, limit string) bool { return CompareNum(v, limit) >= 0 })
}

type Maximum struct{ Limit string }

func (Maximum) Name() string { return "maximum" }
func (k Maximum) NewEvaluator() Evaluator {
	return numericAssertion("maximum", k.Limit, func(v, limit string) bool { return CompareNum(v, limit) <= 0 })
}

type ExclusiveMinimum struct{ Limit string }

func (ExclusiveMinimum) Name() string { return "exclusiveMinimum" }
func (k ExclusiveMinimum) NewEvaluator() Evaluator {
	return numericAssertion("exclusiveMinimum", k.Limit, func(v, limit string) bool { return CompareNum(v, limit) > 0 })
}

type ExclusiveMaximum struct{ Limit string }

func (ExclusiveMaximum) Name() string { return "exclusiveMaximum" }
func (k ExclusiveMaximum) NewEvaluator() Evaluator {
	return numericAssertion("exclusiveMaximum", k.Limit, func(v, limit string) bool { return CompareNum(v, limit) < 0 })
}

type MultipleOf struct{ Divisor string }

func (MultipleOf) Name() string { return "multipleOf" }
func (k MultipleOf) NewEvaluator() Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.Number {
			return Ignored, nil
		}
		if NumberIsMultipleOf(tok.Number, k.Divisor) {
			return True, nil
		}
		return False, ProblemList{{Code: "multipleOf", Path: tok.Path, Keyword: "multipleOf", Params: map[string]string{"divisor": k.Divisor}}}
	})
}

func numericAssertion(code, limit string, ok func(v, limit string) bool) Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.Number {
			return Ignored, nil
		}
		if ok(tok.Number, limit) {
			return True, nil
		}
		return False, ProblemList{{Code: code, Path: tok.Path, Keyword: code, Params: map[string]string{"limit": limit}}}
	})
}

// string assertions: each is IGNORED for any non-string instance. Lengths
// are counted in Unicode code points, not bytes, per Draft-07 §6.3.

type MinLength struct{ Min int }

func (MinLength) Name() string { return "minLength" }
func (k MinLength) NewEvaluator() Evaluator {
	return stringLengthAssertion("minLength", k.Min, func(n, limit int) bool { return n >= limit })
}

type MaxLength struct{ Max int }

func (MaxLength) Name() string { return "maxLength" }
func (k MaxLength) NewEvaluator() Evaluator {
	return stringLengthAssertion("maxLength", k.Max, func(n, limit int) bool { return n <= limit })
}

func stringLengthAssertion(code string, limit int, ok func(n, limit int) bool) Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.String {
			return Ignored, nil
		}
		n := utf8.RuneCountInString(tok.String)
		if ok(n, limit) {
			return True, nil
		}
		key := "min"
		if code == "maxLength" {
			key = "max"
		}
		return False, ProblemList{{Code: code, Path: tok.Path, Keyword: code, Params: map[string]string{key: strconv.Itoa(limit)}}}
	})
}

// Pattern implements the "pattern" keyword using the standard library's
// RE2-based regexp, the only regex engine anywhere in the retrieval pack
// (see DESIGN.md on why no third-party engine displaces it here).
type Pattern struct {
	Source string
	Regexp *regexp.Regexp
}

func (Pattern) Name() string { return "pattern" }

func (k Pattern) NewEvaluator() Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.String {
			return Ignored, nil
		}
		if k.Regexp.MatchString(tok.String) {
			return True, nil
		}
		return False, ProblemList{{Code: "pattern", Path: tok.Path, Keyword: "pattern", Params: map[string]string{"pattern": k.Source}}}
	})
}
