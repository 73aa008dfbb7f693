package source

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
)

type defaultDriver struct{}

func (defaultDriver) Name() string { return "encoding/json" }

func (defaultDriver) NewReader(r io.Reader) Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &stdSource{dec: dec}
}

func (d defaultDriver) NewBytes(b []byte) Source { return d.NewReader(bytes.NewReader(b)) }

type stdContainer int

const (
	stdObject stdContainer = iota
	stdArray
)

type stdFrame struct {
	kind         stdContainer
	expectingKey bool
}

type stdSource struct {
	dec        *json.Decoder
	stack      []stdFrame
	lastOffset int64
}

func (s *stdSource) Location() int64 { return s.lastOffset }

func (s *stdSource) NextToken() (Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := raw.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.push(stdObject)
			return Token{Kind: BeginObject, Offset: s.lastOffset}, nil
		case '}':
			s.pop()
			return Token{Kind: EndObject, Offset: s.lastOffset}, nil
		case '[':
			s.push(stdArray)
			return Token{Kind: BeginArray, Offset: s.lastOffset}, nil
		case ']':
			s.pop()
			return Token{Kind: EndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if s.atObjectKey() {
			return Token{Kind: Key, String: v, Offset: s.lastOffset}, nil
		}
		s.sawValue()
		return Token{Kind: String, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.sawValue()
		return Token{Kind: Bool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.sawValue()
		return Token{Kind: Number, Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		s.sawValue()
		return Token{Kind: Number, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: s.lastOffset}, nil
	case nil:
		s.sawValue()
		return Token{Kind: Null, Offset: s.lastOffset}, nil
	}
	s.sawValue()
	return Token{Kind: Null, Offset: s.lastOffset}, nil
}

func (s *stdSource) push(k stdContainer) {
	s.stack = append(s.stack, stdFrame{kind: k, expectingKey: k == stdObject})
}

func (s *stdSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.sawValue()
}

func (s *stdSource) atObjectKey() bool {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == stdObject && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}

func (s *stdSource) sawValue() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == stdObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
