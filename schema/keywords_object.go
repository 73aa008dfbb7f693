package schema

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nanlint/jvalidate/source"
)

// objCursor is itemCursor's object-keyed counterpart: it remembers the key
// from the most recent Key token and dispatches the following value
// tokens to that key's evaluator.
type objCursor struct {
	active     Evaluator
	openCount  int
	pendingKey string
	result     Result
	probs      ProblemList
}

func (c *objCursor) feed(tok source.Token, depth int, selectSchema func(key string) Evaluator, onDone func(key string, r Result, probs ProblemList)) {
	if depth < 1 {
		return
	}
	if depth == 1 && tok.Kind == source.Key {
		c.pendingKey = tok.String
		return
	}
	if c.active == nil {
		c.active = selectSchema(c.pendingKey)
		c.openCount = 0
		c.result, c.probs = Pending, nil
	}
	if tok.Kind == source.BeginObject || tok.Kind == source.BeginArray {
		c.openCount++
	}
	if c.result == Pending {
		c.result, c.probs = c.active.Evaluate(tok, depth-1)
	}
	if tok.Kind == source.EndObject || tok.Kind == source.EndArray {
		c.openCount--
	}
	if c.openCount == 0 {
		onDone(c.pendingKey, c.result, c.probs)
		c.active = nil
	}
}

// PatternSchema pairs a compiled patternProperties regex with its schema.
type PatternSchema struct {
	Source string
	Regexp *regexp.Regexp
	Schema *Schema
}

// PropertiesGroup implements "properties", "patternProperties", and
// "additionalProperties" together: the three keywords jointly decide which
// schema(s) apply to each key, so the compiler builds one keyword out of
// all three rather than evaluating them independently (see DESIGN.md).
// Additional being nil means the Draft-07 default of an unconstrained
// (always-true) additionalProperties; an explicit `false` is represented
// with the boolean Schema, not with a nil Additional.
type PropertiesGroup struct {
	Properties map[string]*Schema
	Patterns   []PatternSchema
	Additional *Schema
}

func (PropertiesGroup) Name() string { return "properties" }

func (k PropertiesGroup) selectForKey(key string) Evaluator {
	var evs []Evaluator
	matched := false
	if s, ok := k.Properties[key]; ok {
		evs = append(evs, s.NewEvaluator())
		matched = true
	}
	for _, p := range k.Patterns {
		if p.Regexp.MatchString(key) {
			evs = append(evs, p.Schema.NewEvaluator())
			matched = true
		}
	}
	if !matched && k.Additional != nil {
		evs = append(evs, k.Additional.NewEvaluator())
	}
	switch len(evs) {
	case 0:
		return AlwaysTrue
	case 1:
		return evs[0]
	default:
		return newConjunctive(evs)
	}
}

func (k PropertiesGroup) NewEvaluator() Evaluator {
	cur := &objCursor{}
	var failed bool
	var probs ProblemList
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginObject:
				return Pending, nil
			case source.EndObject:
				if failed {
					return False, probs
				}
				return True, nil
			default:
				return Ignored, nil
			}
		}
		cur.feed(tok, depth, k.selectForKey, func(_ string, r Result, p ProblemList) {
			if r == False {
				failed = true
				probs = append(probs, p...)
			}
		})
		return Pending, nil
	})
}

// Required implements the "required" keyword.
type Required struct{ Names []string }

func (Required) Name() string { return "required" }

func (k Required) NewEvaluator() Evaluator {
	missing := make(map[string]struct{}, len(k.Names))
	for _, n := range k.Names {
		missing[n] = struct{}{}
	}
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginObject:
				return Pending, nil
			case source.EndObject:
				if len(missing) == 0 {
					return True, nil
				}
				names := make([]string, 0, len(missing))
				for n := range missing {
					names = append(names, n)
				}
				sort.Strings(names)
				return False, ProblemList{{Code: "required", Path: tok.Path, Keyword: "required", Params: map[string]string{"name": strings.Join(names, ", ")}}}
			default:
				return Ignored, nil
			}
		}
		if depth == 1 && tok.Kind == source.Key {
			delete(missing, tok.String)
		}
		return Pending, nil
	})
}

type MinProperties struct{ Min int }

func (MinProperties) Name() string { return "minProperties" }
func (k MinProperties) NewEvaluator() Evaluator {
	return propertyCountAssertion("minProperties", k.Min, "min", func(n, limit int) bool { return n >= limit })
}

type MaxProperties struct{ Max int }

func (MaxProperties) Name() string { return "maxProperties" }
func (k MaxProperties) NewEvaluator() Evaluator {
	return propertyCountAssertion("maxProperties", k.Max, "max", func(n, limit int) bool { return n <= limit })
}

func propertyCountAssertion(code string, limit int, paramKey string, ok func(n, limit int) bool) Evaluator {
	count := 0
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginObject:
				return Pending, nil
			case source.EndObject:
				if ok(count, limit) {
					return True, nil
				}
				return False, ProblemList{{Code: code, Path: tok.Path, Keyword: code, Params: map[string]string{paramKey: strconv.Itoa(limit)}}}
			default:
				return Ignored, nil
			}
		}
		if depth == 1 && tok.Kind == source.Key {
			count++
		}
		return Pending, nil
	})
}

// PropertyNames implements "propertyNames": a shallow schema applied to
// every key as a string instance, never to the object's values.
type PropertyNames struct{ Schema *Schema }

func (PropertyNames) Name() string { return "propertyNames" }

func (k PropertyNames) NewEvaluator() Evaluator {
	var failed bool
	var probs ProblemList
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginObject:
				return Pending, nil
			case source.EndObject:
				if failed {
					return False, probs
				}
				return True, nil
			default:
				return Ignored, nil
			}
		}
		if depth == 1 && tok.Kind == source.Key {
			ev := k.Schema.NewEvaluator()
			r, p := ev.Evaluate(source.Token{Kind: source.String, String: tok.String, Path: tok.Path}, 0)
			if r == False {
				failed = true
				probs = append(probs, p...)
			}
		}
		return Pending, nil
	})
}

// DependencyEntry is one "dependencies" map value: either a subschema
// (evaluated against the whole object once the dependant key appears) or
// a plain list of other required property names.
type DependencyEntry struct {
	Schema   *Schema
	Required []string
}

// Dependencies implements the "dependencies" keyword.
type Dependencies struct {
	Entries map[string]DependencyEntry
}

func (Dependencies) Name() string { return "dependencies" }

func (k Dependencies) NewEvaluator() Evaluator {
	evs := make([]Evaluator, 0, len(k.Entries))
	for name, entry := range k.Entries {
		if entry.Schema != nil {
			evs = append(evs, newDependencySubschema(name, entry.Schema))
		} else {
			evs = append(evs, newDependencyProperty(name, entry.Required))
		}
	}
	return newConjunctive(evs)
}

// newDependencySubschema follows the original implementation's retroactive
// buffering: the inner schema evaluator sees every token from the start,
// but its verdict is only reported once the dependant key is actually
// observed — possibly after the verdict was already reached.
func newDependencySubschema(dependant string, schema *Schema) Evaluator {
	inner := schema.NewEvaluator()
	active := false
	innerDone := false
	var innerResult Result
	var innerProbs ProblemList
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 && tok.Kind != source.BeginObject && tok.Kind != source.EndObject {
			return Ignored, nil
		}
		if depth == 1 && tok.Kind == source.Key && tok.String == dependant {
			active = true
		}
		if !innerDone {
			r, probs := inner.Evaluate(tok, depth)
			if r == True || r == False {
				innerDone = true
				innerResult = r
				innerProbs = probs
			}
		}
		if depth == 0 && tok.Kind == source.EndObject {
			if !active {
				return Ignored, nil
			}
			if innerDone {
				return innerResult, innerProbs
			}
			return True, nil
		}
		if active && innerDone {
			return innerResult, innerProbs
		}
		return Pending, nil
	})
}

func newDependencyProperty(dependant string, required []string) Evaluator {
	missing := make(map[string]struct{}, len(required))
	for _, n := range required {
		missing[n] = struct{}{}
	}
	active := false
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 && tok.Kind != source.BeginObject && tok.Kind != source.EndObject {
			return Ignored, nil
		}
		if depth == 1 && tok.Kind == source.Key {
			if tok.String == dependant {
				active = true
			}
			delete(missing, tok.String)
		}
		if depth == 0 && tok.Kind == source.EndObject {
			if !active {
				return Ignored, nil
			}
			if len(missing) == 0 {
				return True, nil
			}
			names := make([]string, 0, len(missing))
			for n := range missing {
				names = append(names, n)
			}
			sort.Strings(names)
			return False, ProblemList{{Code: "dependencies", Path: tok.Path, Keyword: "dependencies", Params: map[string]string{"dependant": dependant, "missing": strings.Join(names, ", ")}}}
		}
		return Pending, nil
	})
}
