//go:build gojson

// Package gojson provides a source.Driver backed by github.com/goccy/go-json,
// selected at build time with the "gojson" build tag.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/nanlint/jvalidate/source"
)

func init() { source.SetDriver(Driver()) }

// Driver returns a source.Driver backed by goccy/go-json.
func Driver() source.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "go-json" }

func (driver) NewReader(r io.Reader) source.Source {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &goJSONSource{dec: dec}
}

func (d driver) NewBytes(b []byte) source.Source { return d.NewReader(bytes.NewReader(b)) }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type goJSONSource struct {
	dec   *j.Decoder
	stack []frame
}

func (s *goJSONSource) Location() int64 { return -1 }

func (s *goJSONSource) NextToken() (source.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return source.Token{}, io.EOF
		}
		return source.Token{}, err
	}
	switch v := raw.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.push(kindObject)
			return source.Token{Kind: source.BeginObject}, nil
		case '}':
			s.pop()
			return source.Token{Kind: source.EndObject}, nil
		case '[':
			s.push(kindArray)
			return source.Token{Kind: source.BeginArray}, nil
		case ']':
			s.pop()
			return source.Token{Kind: source.EndArray}, nil
		}
	case string:
		if s.atObjectKey() {
			return source.Token{Kind: source.Key, String: v}, nil
		}
		s.sawValue()
		return source.Token{Kind: source.String, String: v}, nil
	case bool:
		s.sawValue()
		return source.Token{Kind: source.Bool, Bool: v}, nil
	case j.Number:
		s.sawValue()
		return source.Token{Kind: source.Number, Number: string(v)}, nil
	case float64:
		s.sawValue()
		return source.Token{Kind: source.Number, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case nil:
		s.sawValue()
		return source.Token{Kind: source.Null}, nil
	}
	s.sawValue()
	return source.Token{Kind: source.Null}, nil
}

func (s *goJSONSource) push(k containerKind) {
	s.stack = append(s.stack, frame{kind: k, expectingKey: k == kindObject})
}

func (s *goJSONSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.sawValue()
}

func (s *goJSONSource) atObjectKey() bool {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}

func (s *goJSONSource) sawValue() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
