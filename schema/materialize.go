package schema

import "github.com/nanlint/jvalidate/source"

// valueBuilder reconstructs exactly one instance value from a token stream,
// for the handful of keywords (const, enum, uniqueItems) whose semantics
// are defined over a whole value rather than over the stream of events
// that produced it. It is deliberately narrow: nothing outside these
// keywords holds a materialized tree.
type valueBuilder struct {
	stack []partial
	root  Value
	done  bool
}

type partial struct {
	isObject bool
	obj      map[string]Value
	keys     []string
	arr      []Value
	pendKey  string
	haveKey  bool
}

// Feed consumes one token at relative depth. It returns true once the root
// value is complete, along with the materialized value.
func (b *valueBuilder) Feed(tok source.Token, depth int) (bool, Value) {
	if b.done {
		return true, b.root
	}
	switch tok.Kind {
	case source.BeginObject:
		b.push(partial{isObject: true, obj: map[string]Value{}})
	case source.BeginArray:
		b.push(partial{isObject: false})
	case source.EndObject:
		v := Value{Kind: KindObject, Obj: b.top().obj, Keys: b.top().keys}
		b.pop()
		b.place(v)
	case source.EndArray:
		v := Value{Kind: KindArray, Arr: b.top().arr}
		b.pop()
		b.place(v)
	case source.Key:
		b.top().pendKey = tok.String
		b.top().haveKey = true
	case source.String:
		b.place(Value{Kind: KindString, Str: tok.String})
	case source.Number:
		b.place(Value{Kind: KindNumber, Num: tok.Number})
	case source.Bool:
		b.place(Value{Kind: KindBool, Bool: tok.Bool})
	case source.Null:
		b.place(Value{Kind: KindNull})
	}
	return b.done, b.root
}

func (b *valueBuilder) push(p partial) { b.stack = append(b.stack, p) }

func (b *valueBuilder) top() *partial { return &b.stack[len(b.stack)-1] }

func (b *valueBuilder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *valueBuilder) place(v Value) {
	if len(b.stack) == 0 {
		b.root = v
		b.done = true
		return
	}
	top := b.top()
	if top.isObject {
		if top.haveKey {
			top.obj[top.pendKey] = v
			top.keys = append(top.keys, top.pendKey)
			top.haveKey = false
			top.pendKey = ""
		}
	} else {
		top.arr = append(top.arr, v)
	}
}

// newMaterializingEvaluator wraps a callback that receives the fully
// materialized instance value once the stream closes it.
func newMaterializingEvaluator(cb func(v Value, path string) (Result, ProblemList)) Evaluator {
	b := &valueBuilder{}
	var rootPath string
	seenRoot := false
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if !seenRoot {
			rootPath = tok.Path
			seenRoot = true
		}
		done, v := b.Feed(tok, depth)
		if !done {
			return Pending, nil
		}
		return cb(v, rootPath)
	})
}
