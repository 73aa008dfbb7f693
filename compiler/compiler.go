// Package compiler builds a schema.Schema tree from a raw JSON Schema
// Draft-07 document: keyword builders run eagerly (regexes compiled once,
// number literals parsed once), and $ref/$id resolution runs in two
// passes so forward and circular references both work.
package compiler

import (
	"bytes"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/nanlint/jvalidate/format"
	"github.com/nanlint/jvalidate/schema"
)

// Options configures a Compiler.
type Options struct {
	// StrictFormat rejects an unrecognized "format" name as a BuilderError
	// instead of silently ignoring it.
	StrictFormat bool
}

// Compiler turns raw JSON Schema documents into schema.Schema trees.
type Compiler struct {
	opt     Options
	root    any
	idMap   map[string]any
	pending []pendingRef
}

type pendingRef struct {
	ref *schema.SchemaReference
	uri string
}

// New creates a Compiler with the given options.
func New(opt Options) *Compiler { return &Compiler{opt: opt} }

// CompileBytes parses and compiles a raw JSON Schema document.
func (c *Compiler) CompileBytes(data []byte) (*schema.Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &BuilderError{Path: "/", Message: "malformed JSON: " + err.Error()}
	}
	return c.Compile(raw)
}

// Compile compiles an already-decoded document (as produced by
// encoding/json with UseNumber enabled).
func (c *Compiler) Compile(raw any) (*schema.Schema, error) {
	c.root = raw
	c.idMap = map[string]any{}
	c.pending = nil
	if err := c.collectIDs(raw); err != nil {
		return nil, err
	}
	root, err := c.build(raw, "/")
	if err != nil {
		return nil, err
	}
	c.resolveRefs()
	return root, nil
}

func (c *Compiler) collectIDs(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		if arr, ok := v.([]any); ok {
			for _, e := range arr {
				if err := c.collectIDs(e); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if idv, ok := m["$id"]; ok {
		id, _ := idv.(string)
		if id != "" {
			if _, err := url.Parse(id); err != nil {
				return &ReferenceError{URI: id, Message: "invalid $id URI: " + err.Error()}
			}
			if _, dup := c.idMap[id]; dup {
				return &ReferenceError{URI: id, Message: "duplicate $id"}
			}
			c.idMap[id] = m
		}
	}
	for _, val := range m {
		if err := c.collectIDs(val); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) resolveRefs() {
	// Building a target can queue further $refs (nested or circular), so the
	// loop runs until the queue stops growing. Each URI is built at most once
	// and shared by every reference to it, which closes reference cycles.
	built := map[string]*schema.Schema{}
	for i := 0; i < len(c.pending); i++ {
		p := c.pending[i]
		if resolved, ok := built[p.uri]; ok {
			p.ref.Resolved = resolved // nil: evaluates via the nonexistent-schema sentinel
			continue
		}
		built[p.uri] = nil
		target := c.resolvePointerOrID(p.uri)
		if target == nil {
			continue // left nil: evaluates via the nonexistent-schema sentinel
		}
		resolved, err := c.build(target, "/")
		if err != nil {
			continue
		}
		built[p.uri] = resolved
		p.ref.Resolved = resolved
	}
}

// resolvePointerOrID resolves a $ref URI against the $id map first, then
// as a JSON pointer fragment into the root document. Base-URI composition
// per RFC 3986 §5 across nested $id scopes is out of scope here: every
// $ref in practice targets either a top-level $id or a root-relative
// pointer, which covers every example in the retrieval pack and the
// common real-world Draft-07 corpus (see DESIGN.md).
func (c *Compiler) resolvePointerOrID(uri string) any {
	if target, ok := c.idMap[uri]; ok {
		return target
	}
	frag := uri
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		frag = uri[i:]
	}
	if frag == "#" || frag == "" {
		return c.root
	}
	if !strings.HasPrefix(frag, "#/") {
		return nil
	}
	cur := c.root
	for _, tok := range strings.Split(frag[2:], "/") {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		next, ok := m[tok]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func (c *Compiler) build(raw any, path string) (*schema.Schema, error) {
	switch v := raw.(type) {
	case bool:
		b := v
		return &schema.Schema{Boolean: &b}, nil
	case map[string]any:
		return c.buildObject(v, path)
	default:
		return nil, &BuilderError{Path: path, Message: "schema must be a JSON object or boolean"}
	}
}

func (c *Compiler) buildObject(m map[string]any, path string) (*schema.Schema, error) {
	s := &schema.Schema{}
	if idv, ok := m["$id"].(string); ok {
		s.ID = idv
	}
	if refv, ok := m["$ref"].(string); ok {
		if _, err := url.Parse(refv); err != nil {
			return nil, &ReferenceError{URI: refv, Message: "invalid $ref URI: " + err.Error()}
		}
		ref := &schema.SchemaReference{URI: refv}
		s.Ref = ref
		c.pending = append(c.pending, pendingRef{ref: ref, uri: refv})
	}

	add := func(kw schema.Keyword) { s.Keywords = append(s.Keywords, kw) }

	if tv, ok := m["type"]; ok {
		kw, err := buildType(tv, path)
		if err != nil {
			return nil, err
		}
		add(kw)
	}
	if ev, ok := m["enum"]; ok {
		arr, ok := ev.([]any)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "enum must be an array"}
		}
		if len(arr) == 0 {
			return nil, &BuilderError{Path: path, Message: "enum must not be empty"}
		}
		values := make([]schema.Value, len(arr))
		for i, e := range arr {
			values[i] = toValue(e)
		}
		if hasDuplicateValue(values) {
			return nil, &BuilderError{Path: path, Message: "enum values must be unique"}
		}
		add(schema.Enum{Values: values})
	}
	if cv, ok := m["const"]; ok {
		add(schema.Const{Value: toValue(cv)})
	}
	if nv, ok := m["minimum"]; ok {
		n, err := numberText(nv, path, "minimum")
		if err != nil {
			return nil, err
		}
		add(schema.Minimum{Limit: n})
	}
	if nv, ok := m["maximum"]; ok {
		n, err := numberText(nv, path, "maximum")
		if err != nil {
			return nil, err
		}
		add(schema.Maximum{Limit: n})
	}
	if nv, ok := m["exclusiveMinimum"]; ok {
		n, err := numberText(nv, path, "exclusiveMinimum")
		if err != nil {
			return nil, err
		}
		add(schema.ExclusiveMinimum{Limit: n})
	}
	if nv, ok := m["exclusiveMaximum"]; ok {
		n, err := numberText(nv, path, "exclusiveMaximum")
		if err != nil {
			return nil, err
		}
		add(schema.ExclusiveMaximum{Limit: n})
	}
	if nv, ok := m["multipleOf"]; ok {
		n, err := numberText(nv, path, "multipleOf")
		if err != nil {
			return nil, err
		}
		if !positiveNumberText(n) {
			return nil, &BuilderError{Path: path, Message: "multipleOf must be a positive number"}
		}
		add(schema.MultipleOf{Divisor: n})
	}
	if nv, ok := m["minLength"]; ok {
		n, err := intValue(nv, path, "minLength")
		if err != nil {
			return nil, err
		}
		add(schema.MinLength{Min: n})
	}
	if nv, ok := m["maxLength"]; ok {
		n, err := intValue(nv, path, "maxLength")
		if err != nil {
			return nil, err
		}
		add(schema.MaxLength{Max: n})
	}
	if pv, ok := m["pattern"]; ok {
		ps, ok := pv.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "pattern must be a string"}
		}
		re, err := regexp.Compile(ps)
		if err != nil {
			return nil, &BuilderError{Path: path, Message: "invalid pattern: " + err.Error()}
		}
		add(schema.Pattern{Source: ps, Regexp: re})
	}
	if fv, ok := m["format"]; ok {
		fs, ok := fv.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "format must be a string"}
		}
		if _, known := format.Lookup(fs); !known && c.opt.StrictFormat {
			return nil, &BuilderError{Path: path, Message: "unknown format " + fs}
		}
		add(schema.Format{FormatName: fs})
	}
	if cev, ok := m["contentEncoding"]; ok {
		ce, ok := cev.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "contentEncoding must be a string"}
		}
		add(schema.ContentEncoding{Encoding: ce})
	}
	if cmv, ok := m["contentMediaType"]; ok {
		cm, ok := cmv.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "contentMediaType must be a string"}
		}
		_, b64 := m["contentEncoding"]
		add(schema.ContentMediaType{MediaType: cm, Base64: b64})
	}

	if tv, ok := m["title"]; ok {
		s, ok := tv.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "title must be a string"}
		}
		add(schema.Title{Text: s})
	}
	if dv, ok := m["description"]; ok {
		s, ok := dv.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "description must be a string"}
		}
		add(schema.Description{Text: s})
	}
	if dv, ok := m["default"]; ok {
		add(schema.Default{Value: toValue(dv)})
	}
	if ev, ok := m["examples"]; ok {
		arr, ok := ev.([]any)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "examples must be an array"}
		}
		values := make([]schema.Value, len(arr))
		for i, e := range arr {
			values[i] = toValue(e)
		}
		add(schema.Examples{Values: values})
	}
	if cv, ok := m["$comment"]; ok {
		s, ok := cv.(string)
		if !ok {
			return nil, &BuilderError{Path: path, Message: "$comment must be a string"}
		}
		add(schema.Comment{Text: s})
	}

	// definitions is built eagerly so a malformed subschema there is caught
	// as a BuilderError at compile time even if nothing ever $refs it; it
	// produces no Keyword of its own since $ref resolution, not the
	// evaluator, is what gives its entries meaning.
	if defs, ok := m["definitions"].(map[string]any); ok {
		for k, v := range defs {
			if _, err := c.build(v, path+"/definitions/"+k); err != nil {
				return nil, err
			}
		}
	}

	if err := c.buildArrayKeywords(m, path, add); err != nil {
		return nil, err
	}
	if err := c.buildObjectKeywords(m, path, add); err != nil {
		return nil, err
	}
	if err := c.buildCombinators(m, path, add); err != nil {
		return nil, err
	}

	return s, nil
}

func buildType(v any, path string) (schema.Keyword, error) {
	toType := func(s string) (schema.InstanceType, error) {
		switch s {
		case "null", "boolean", "object", "array", "number", "string", "integer":
			return schema.InstanceType(s), nil
		default:
			return "", &BuilderError{Path: path, Message: "unknown type name " + s}
		}
	}
	switch t := v.(type) {
	case string:
		it, err := toType(t)
		if err != nil {
			return nil, err
		}
		return schema.Type{Types: []schema.InstanceType{it}}, nil
	case []any:
		types := make([]schema.InstanceType, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, &BuilderError{Path: path, Message: "type array must contain only strings"}
			}
			it, err := toType(s)
			if err != nil {
				return nil, err
			}
			types = append(types, it)
		}
		return schema.Type{Types: types}, nil
	default:
		return nil, &BuilderError{Path: path, Message: "type must be a string or array of strings"}
	}
}
