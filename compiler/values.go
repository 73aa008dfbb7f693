package compiler

import (
	"encoding/json"
	"math/big"
	"sort"

	"github.com/nanlint/jvalidate/schema"
)

// toValue converts a decoded any (as produced by encoding/json with
// UseNumber) into a schema.Value, the materialized shape const/enum
// compare against.
func toValue(v any) schema.Value {
	switch t := v.(type) {
	case nil:
		return schema.Value{Kind: schema.KindNull}
	case bool:
		return schema.Value{Kind: schema.KindBool, Bool: t}
	case json.Number:
		return schema.Value{Kind: schema.KindNumber, Num: string(t)}
	case string:
		return schema.Value{Kind: schema.KindString, Str: t}
	case []any:
		arr := make([]schema.Value, len(t))
		for i, e := range t {
			arr[i] = toValue(e)
		}
		return schema.Value{Kind: schema.KindArray, Arr: arr}
	case map[string]any:
		obj := make(map[string]schema.Value, len(t))
		keys := make([]string, 0, len(t))
		for k, e := range t {
			obj[k] = toValue(e)
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return schema.Value{Kind: schema.KindObject, Obj: obj, Keys: keys}
	default:
		return schema.Value{Kind: schema.KindNull}
	}
}

func numberText(v any, path, keyword string) (string, error) {
	n, ok := v.(json.Number)
	if !ok {
		return "", &BuilderError{Path: path, Message: keyword + " must be a number"}
	}
	return string(n), nil
}

// intValue parses a non-negative integer keyword value. Every Draft-07
// size keyword (minLength, maxLength, minItems, maxItems, minProperties,
// maxProperties, minContains, maxContains) requires a non-negative
// integer per the meta-schema, so the check lives here once rather than
// at each call site.
func intValue(v any, path, keyword string) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, &BuilderError{Path: path, Message: keyword + " must be a number"}
	}
	i, err := n.Int64()
	if err != nil {
		return 0, &BuilderError{Path: path, Message: keyword + " must be an integer"}
	}
	if i < 0 {
		return 0, &BuilderError{Path: path, Message: keyword + " must not be negative"}
	}
	return int(i), nil
}

// positiveNumberText reports whether a numberText result represents a
// strictly positive number, as Draft-07 requires for multipleOf.
func positiveNumberText(s string) bool {
	r, ok := new(big.Rat).SetString(s)
	return ok && r.Sign() > 0
}

// duplicateString returns the first value appearing more than once in
// names, or "" if every entry is unique.
func duplicateString(names []string) string {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return n
		}
		seen[n] = struct{}{}
	}
	return ""
}

// hasDuplicateValue reports whether any two entries in values are
// structurally equal, per enum's uniqueItems requirement in the
// Draft-07 meta-schema.
func hasDuplicateValue(values []schema.Value) bool {
	for i := 1; i < len(values); i++ {
		for j := 0; j < i; j++ {
			if schema.DeepEqual(values[i], values[j]) {
				return true
			}
		}
	}
	return false
}

func optionalIntPtr(m map[string]any, key, path string) (*int, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	i, err := intValue(v, path, key)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
