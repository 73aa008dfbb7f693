// Package schema holds the compiled schema and keyword object model together
// with the streaming tri-state evaluator engine. The two are kept in one
// package because every keyword's evaluator closes over sibling schemas and
// the engine's combinators close over keyword evaluators — splitting them
// across packages would just relocate the same cyclic dependency.
package schema

import (
	"math/big"
	"sort"
	"strconv"
)

// InstanceType names one of the seven JSON Schema instance types.
type InstanceType string

const (
	TypeNull    InstanceType = "null"
	TypeBoolean InstanceType = "boolean"
	TypeObject  InstanceType = "object"
	TypeArray   InstanceType = "array"
	TypeNumber  InstanceType = "number"
	TypeString  InstanceType = "string"
	TypeInteger InstanceType = "integer"
)

// Value is a materialized JSON value, used only where a keyword requires a
// whole value up front (const, enum, default) rather than a stream of
// tokens. The compiler parses schema constants into this shape; instance
// values take it only inside valueBuilder, for const, enum and uniqueItems.
type Value struct {
	Kind   Kind
	Str    string
	Num    string // decimal text, parsed on demand with big.Rat for exactness
	Bool   bool
	Arr    []Value
	Obj    map[string]Value
	Keys   []string // object keys: sorted for compiled schema values, stream order for materialized instances
}

// Kind mirrors source.Kind but for a materialized Value rather than a token.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// DeepEqual implements JSON Schema's structural equality: used by const,
// enum, and uniqueItems. Numbers compare by mathematical value, not by
// decimal text, so 1.0 equals 1.
func DeepEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return numEqual(a.Num, b.Num)
	case KindString:
		return a.Str == b.Str
	case KindArray:
		if len(a.Arr) != len(b.Arr) {
			return false
		}
		for i := range a.Arr {
			if !DeepEqual(a.Arr[i], b.Arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.Obj) != len(b.Obj) {
			return false
		}
		for k, av := range a.Obj {
			bv, ok := b.Obj[k]
			if !ok || !DeepEqual(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

func numEqual(a, b string) bool {
	if a == b {
		return true
	}
	ra, ok1 := new(big.Rat).SetString(a)
	rb, ok2 := new(big.Rat).SetString(b)
	if !ok1 || !ok2 {
		return false
	}
	return ra.Cmp(rb) == 0
}

// IsInteger reports whether the decimal text names a mathematically
// integral number, the refinement "integer" requires over "number".
func IsInteger(text string) bool {
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return false
	}
	return r.IsInt()
}

// NumberIsMultipleOf reports whether value divided by divisor is an exact
// integer; an unparseable operand or a zero divisor yields false.
func NumberIsMultipleOf(value, divisor string) bool {
	v, ok1 := new(big.Rat).SetString(value)
	d, ok2 := new(big.Rat).SetString(divisor)
	if !ok1 || !ok2 || d.Sign() == 0 {
		return false
	}
	q := new(big.Rat).Quo(v, d)
	return q.IsInt()
}

func CompareNum(a, b string) int {
	ra, _ := new(big.Rat).SetString(a)
	rb, _ := new(big.Rat).SetString(b)
	if ra == nil || rb == nil {
		return 0
	}
	return ra.Cmp(rb)
}

// SortedKeys returns m's keys sorted for deterministic iteration where spec
// behavior does not depend on declaration order.
func SortedKeys(m map[string]Value) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// FormatIndex renders an array index as a JSON pointer token.
func FormatIndex(i int) string { return strconv.Itoa(i) }
