// Package jvalidate ties a compiled schema, a token source, and a problem
// sink together into the streaming validation entry point: Validate feeds
// every token from src into the schema's Evaluator and collects whatever
// problems surface, without ever materializing the instance as a Go value
// (aside from the narrow const/enum/uniqueItems exception documented in
// package schema).
package jvalidate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nanlint/jvalidate/problem"
	"github.com/nanlint/jvalidate/schema"
	"github.com/nanlint/jvalidate/source"
)

// Result is the outcome of validating one instance against one schema.
type Result struct {
	Valid    bool
	Problems problem.List
}

// Options controls the structural limits applied to the instance stream
// before it ever reaches the evaluator.
type Options struct {
	OnDuplicateKey source.DuplicateStrictness
	MaxDepth       int
	MaxBytes       int64
}

// Validate streams every token of src through s, reading src to its end
// even after the root evaluator has resolved. ctx is honored between
// tokens so a long-running batch validation can be canceled. It is a thin
// drain loop over ValidatingSource for callers who just want the final
// Result; callers that need the token stream itself while it validates
// should use ValidatingSource directly.
func Validate(ctx context.Context, s *schema.Schema, src source.Source) (Result, error) {
	var probs problem.List
	vs := NewValidatingSource(s, src, ProblemSinkFunc(func(p problem.Problem) {
		probs = append(probs, p)
	}))
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, err := vs.NextToken(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Result{}, fmt.Errorf("jvalidate: reading source: %w", err)
		}
	}
	if vs.Result() == schema.Pending {
		// Source ended without the root evaluator reaching a verdict: treat as
		// valid only when no problems accumulated, mirroring an empty/absent
		// instance against an unconstrained schema.
		return Result{Valid: len(probs) == 0, Problems: probs}, nil
	}
	return Result{Valid: vs.Result() == schema.True, Problems: probs}, nil
}

// ValidateBytes is a convenience wrapper over Validate for an in-memory
// instance document, using the active source.Driver with default structural
// limits (no duplicate-key rejection, no depth or size cap).
func ValidateBytes(ctx context.Context, s *schema.Schema, data []byte) (Result, error) {
	return ValidateBytesWithOptions(ctx, s, data, Options{})
}

// ValidateBytesWithOptions is ValidateBytes with explicit structural limits,
// enforced via source.Enforce before any token reaches the evaluator.
func ValidateBytesWithOptions(ctx context.Context, s *schema.Schema, data []byte, opt Options) (Result, error) {
	src := source.Enforce(source.NewBytes(data), source.EnforceOptions{
		OnDuplicate: opt.OnDuplicateKey,
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	})
	res, err := Validate(ctx, s, src)
	if err != nil {
		var enforceErr *source.EnforceError
		if errors.As(err, &enforceErr) {
			return Result{}, enforceErr
		}
		return Result{}, err
	}
	return res, nil
}
