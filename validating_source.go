package jvalidate

import (
	"github.com/nanlint/jvalidate/problem"
	"github.com/nanlint/jvalidate/schema"
	"github.com/nanlint/jvalidate/source"
)

// ProblemSink receives problems as a ValidatingSource discovers them,
// mid-stream, rather than only once the caller has drained every token.
type ProblemSink interface {
	Problem(p problem.Problem)
}

// ProblemSinkFunc adapts a function to ProblemSink.
type ProblemSinkFunc func(problem.Problem)

func (f ProblemSinkFunc) Problem(p problem.Problem) { f(p) }

// ValidatingSource wraps a source.Source, implementing source.Source
// itself: every token it forwards is the exact token its inner source
// produced, at the same position in the stream. Each one is also fed
// into the schema's Evaluator behind the scenes, with any resulting
// problems diverted to sink instead of being folded into the return
// value — letting a caller pass the validated stream straight through to
// something else (a re-encoder, a forwarding proxy) while validation
// happens for free alongside it.
type ValidatingSource struct {
	inner source.Source
	ev    schema.Evaluator
	sink  ProblemSink
	final schema.Result
	depth int
}

// NewValidatingSource builds a ValidatingSource that validates src
// against s, reporting problems to sink as they're found.
func NewValidatingSource(s *schema.Schema, src source.Source, sink ProblemSink) *ValidatingSource {
	return &ValidatingSource{inner: src, ev: s.NewEvaluator(), sink: sink, final: schema.Pending}
}

func (v *ValidatingSource) Location() int64 { return v.inner.Location() }

// NextToken forwards the next token from the wrapped source unchanged,
// after evaluating it against the schema and routing any problems to sink.
// Once the root evaluator has reached a verdict, later tokens are still
// forwarded but no longer evaluated.
func (v *ValidatingSource) NextToken() (source.Token, error) {
	tok, err := v.inner.NextToken()
	if err != nil {
		return tok, err
	}
	// A container's Begin and End tokens sit at the container's own depth;
	// everything between them is one level deeper.
	depth := v.depth
	switch tok.Kind {
	case source.BeginObject, source.BeginArray:
		v.depth++
	case source.EndObject, source.EndArray:
		v.depth--
		depth = v.depth
	}
	if v.final != schema.Pending {
		return tok, nil
	}
	r, probs := v.ev.Evaluate(tok, depth)
	for _, p := range probs {
		v.sink.Problem(p)
	}
	if r == schema.True || r == schema.False {
		v.final = r
	}
	return tok, nil
}

// Result reports the root evaluator's verdict so far: Pending until the
// stream has been fully drained (or the schema resolves early).
func (v *ValidatingSource) Result() schema.Result { return v.final }
