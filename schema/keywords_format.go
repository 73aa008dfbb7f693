package schema

import (
	"encoding/base64"
	"encoding/json"

	"github.com/nanlint/jvalidate/format"
	"github.com/nanlint/jvalidate/source"
)

// Format implements the "format" keyword via the pluggable format
// registry. An unrecognized format name is a builder concern, caught by
// the compiler before a Format keyword is ever constructed when strict
// mode is on; here, at evaluation time, an unknown name is simply
// ignored, matching Draft-07's annotation-only fallback behavior for
// formats a lax validator chooses not to enforce.
type Format struct {
	FormatName string
}

func (Format) Name() string { return "format" }

func (k Format) NewEvaluator() Evaluator {
	attr, ok := format.Lookup(k.FormatName)
	if !ok {
		return AlwaysTrue
	}
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.String {
			return Ignored, nil
		}
		if attr.Valid(tok.String) {
			return True, nil
		}
		return False, ProblemList{{Code: "format", Path: tok.Path, Keyword: "format", Params: map[string]string{"format": k.FormatName}}}
	})
}

// ContentEncoding implements "contentEncoding". Draft-07 defines it purely
// as an annotation unless a validator opts into enforcing it; this one
// does, supporting "base64" per RFC 4648.
type ContentEncoding struct{ Encoding string }

func (ContentEncoding) Name() string { return "contentEncoding" }

func (k ContentEncoding) NewEvaluator() Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.String {
			return Ignored, nil
		}
		if k.Encoding != "base64" {
			return True, nil
		}
		if _, err := base64.StdEncoding.DecodeString(tok.String); err == nil {
			return True, nil
		}
		return False, ProblemList{{Code: "contentEncoding", Path: tok.Path, Keyword: "contentEncoding", Params: map[string]string{"encoding": k.Encoding}}}
	})
}

// ContentMediaType implements "contentMediaType", supporting
// "application/json". Base64 is set by the compiler whenever the schema
// also has a contentEncoding keyword, whatever its value; the string is
// then base64-decoded first, and a string that does not decode passes.
type ContentMediaType struct {
	MediaType string
	Base64    bool
}

func (ContentMediaType) Name() string { return "contentMediaType" }

func (k ContentMediaType) NewEvaluator() Evaluator {
	return EvaluatorFunc(func(tok source.Token, depth int) (Result, ProblemList) {
		if depth != 0 {
			return Pending, nil
		}
		if tok.Kind != source.String {
			return Ignored, nil
		}
		if k.MediaType != "application/json" {
			return True, nil
		}
		raw := []byte(tok.String)
		if k.Base64 {
			decoded, err := base64.StdEncoding.DecodeString(tok.String)
			if err != nil {
				// contentEncoding already reported this; content type cannot be judged.
				return True, nil
			}
			raw = decoded
		}
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return True, nil
		}
		return False, ProblemList{{Code: "contentMediaType", Path: tok.Path, Keyword: "contentMediaType", Params: map[string]string{"mediaType": k.MediaType}}}
	})
}
