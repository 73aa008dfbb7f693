package schema

import (
	"strconv"

	"github.com/nanlint/jvalidate/source"
)

// itemCursor drives one child evaluator per array element, tracking how
// deep the current element's own container nesting goes so it knows
// exactly which token closes the element (rather than the array itself).
type itemCursor struct {
	active    Evaluator
	openCount int
	index     int
	result    Result
	probs     ProblemList
}

// feed processes one array-relative token. depth is relative to the
// array's own BeginArray/EndArray (1 = an element's own root token).
// selectSchema picks the evaluator for a new element by index; onDone
// fires at the element's last token with the verdict and problems its
// evaluator reported when it resolved.
func (c *itemCursor) feed(tok source.Token, depth int, selectSchema func(index int) Evaluator, onDone func(index int, r Result, probs ProblemList)) {
	if depth < 1 {
		return
	}
	if c.active == nil {
		c.active = selectSchema(c.index)
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
		onDone(c.index, c.result, c.probs)
		c.index++
		c.active = nil
	}
}

// Items implements the "items"/"additionalItems" keyword pair: either a
// single schema applied to every element (Single), or a positional tuple
// with an optional schema for the overflow (Additional defaults to
// AlwaysTrue when nil, matching Draft-07's "true" default).
type Items struct {
	Single     *Schema
	Tuple      []*Schema
	Additional *Schema
}

func (Items) Name() string { return "items" }

func (k Items) selectSchema(index int) Evaluator {
	if k.Single != nil {
		return k.Single.NewEvaluator()
	}
	if index < len(k.Tuple) {
		return k.Tuple[index].NewEvaluator()
	}
	if k.Additional != nil {
		return k.Additional.NewEvaluator()
	}
	return AlwaysTrue
}

func (k Items) NewEvaluator() Evaluator {
	cur := &itemCursor{}
	var failed bool
	var probs ProblemList
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginArray:
				return Pending, nil
			case source.EndArray:
				if failed {
					return False, probs
				}
				return True, nil
			default:
				return Ignored, nil
			}
		}
		cur.feed(tok, depth, k.selectSchema, func(_ int, r Result, p ProblemList) {
			if r == False {
				failed = true
				probs = append(probs, p...)
			}
		})
		return Pending, nil
	})
}

// itemCounter counts top-level array elements without constructing any
// evaluator, for minItems/maxItems/minProperties-style tallies.
type itemCounter struct {
	depthInItem int
	count       int
}

func (c *itemCounter) feed(tok source.Token, depth int) {
	if depth < 1 {
		return
	}
	if depth == 1 && c.depthInItem == 0 {
		c.count++
	}
	switch tok.Kind {
	case source.BeginObject, source.BeginArray:
		c.depthInItem++
	case source.EndObject, source.EndArray:
		c.depthInItem--
	}
}

type MinItems struct{ Min int }

func (MinItems) Name() string { return "minItems" }
func (k MinItems) NewEvaluator() Evaluator { return itemCountAssertion("minItems", k.Min, "min", func(n, limit int) bool { return n >= limit }) }

type MaxItems struct{ Max int }

func (MaxItems) Name() string { return "maxItems" }
func (k MaxItems) NewEvaluator() Evaluator { return itemCountAssertion("maxItems", k.Max, "max", func(n, limit int) bool { return n <= limit }) }

func itemCountAssertion(code string, limit int, paramKey string, ok func(n, limit int) bool) Evaluator {
	c := &itemCounter{}
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginArray:
				return Pending, nil
			case source.EndArray:
				if ok(c.count, limit) {
					return True, nil
				}
				return False, ProblemList{{Code: code, Path: tok.Path, Keyword: code, Params: map[string]string{paramKey: strconv.Itoa(limit)}}}
			default:
				return Ignored, nil
			}
		}
		c.feed(tok, depth)
		return Pending, nil
	})
}

// UniqueItems implements "uniqueItems": materializes each element in turn
// (never the whole array at once) and compares it by structural equality
// against every element seen so far.
type UniqueItems struct{}

func (UniqueItems) Name() string { return "uniqueItems" }

func (UniqueItems) NewEvaluator() Evaluator {
	var builder *valueBuilder
	var seen []Value
	dupFound := false
	dupIndex := 0
	index := 0
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginArray:
				return Pending, nil
			case source.EndArray:
				if dupFound {
					return False, ProblemList{{Code: "uniqueItems", Path: tok.Path, Keyword: "uniqueItems", Params: map[string]string{"index": strconv.Itoa(dupIndex)}}}
				}
				return True, nil
			default:
				return Ignored, nil
			}
		}
		if builder == nil {
			builder = &valueBuilder{}
		}
		done, v := builder.Feed(tok, depth-1)
		if done {
			if !dupFound {
				for _, s := range seen {
					if DeepEqual(s, v) {
						dupFound = true
						dupIndex = index
						break
					}
				}
				if !dupFound {
					seen = append(seen, v)
				}
			}
			index++
			builder = nil
		}
		return Pending, nil
	})
}

// Contains implements "contains"/"minContains"/"maxContains": counts the
// elements matching Schema and checks the count against the (default 1,
// unbounded) range.
type Contains struct {
	Schema      *Schema
	MinContains *int
	MaxContains *int
}

func (Contains) Name() string { return "contains" }

func (k Contains) NewEvaluator() Evaluator {
	cur := &itemCursor{}
	matches := 0
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth == 0 {
			switch tok.Kind {
			case source.BeginArray:
				return Pending, nil
			case source.EndArray:
				min := 1
				if k.MinContains != nil {
					min = *k.MinContains
				}
				if matches < min {
					return False, ProblemList{{Code: "minContains", Path: tok.Path, Keyword: "contains", Params: map[string]string{"min": strconv.Itoa(min)}}}
				}
				if k.MaxContains != nil && matches > *k.MaxContains {
					return False, ProblemList{{Code: "maxContains", Path: tok.Path, Keyword: "contains", Params: map[string]string{"max": strconv.Itoa(*k.MaxContains)}}}
				}
				return True, nil
			default:
				return Ignored, nil
			}
		}
		cur.feed(tok, depth, func(int) Evaluator { return k.Schema.NewEvaluator() }, func(_ int, r Result, _ ProblemList) {
			if r == True {
				matches++
			}
		})
		return Pending, nil
	})
}
