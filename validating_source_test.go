package jvalidate

import (
	"io"
	"testing"

	"github.com/nanlint/jvalidate/compiler"
	"github.com/nanlint/jvalidate/problem"
	"github.com/nanlint/jvalidate/schema"
	"github.com/nanlint/jvalidate/source"
)

// TestValidatingSourceForwardsTokensUnchanged checks the property that
// motivates ValidatingSource: every token it yields is the same token, at
// the same position, that its wrapped source produced.
func TestValidatingSourceForwardsTokensUnchanged(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"type": "object",
		"required": ["name"]
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	input := []byte(`{"name":"ada","age":30}`)
	want := drainTokens(t, source.NewBytes(input))

	var probs problem.List
	vs := NewValidatingSource(s, source.NewBytes(input), ProblemSinkFunc(func(p problem.Problem) {
		probs = append(probs, p)
	}))
	got := drainTokens(t, vs)

	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(probs) != 0 {
		t.Fatalf("expected no problems for a valid instance, got %v", probs)
	}
	if vs.Result() != schema.True {
		t.Fatalf("expected the root evaluator to resolve true for a valid instance, got %v", vs.Result())
	}
}

func drainTokens(t *testing.T, src source.Source) []source.Token {
	t.Helper()
	var toks []source.Token
	for {
		tok, err := src.NextToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("NextToken: %v", err)
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestValidatingSourceDivertsProblemsToSink(t *testing.T) {
	comp := compiler.New(compiler.Options{})
	s, err := comp.CompileBytes([]byte(`{
		"type": "object",
		"required": ["name"]
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var probs problem.List
	vs := NewValidatingSource(s, source.NewBytes([]byte(`{"age":30}`)), ProblemSinkFunc(func(p problem.Problem) {
		probs = append(probs, p)
	}))
	drainTokens(t, vs)

	if len(probs) == 0 {
		t.Fatalf("expected the missing required property to surface a problem via the sink")
	}
}
