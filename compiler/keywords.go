package compiler

import (
	"regexp"

	"github.com/nanlint/jvalidate/schema"
)

func (c *Compiler) buildArrayKeywords(m map[string]any, path string, add func(schema.Keyword)) error {
	if nv, ok := m["minItems"]; ok {
		n, err := intValue(nv, path, "minItems")
		if err != nil {
			return err
		}
		add(schema.MinItems{Min: n})
	}
	if nv, ok := m["maxItems"]; ok {
		n, err := intValue(nv, path, "maxItems")
		if err != nil {
			return err
		}
		add(schema.MaxItems{Max: n})
	}
	if uv, ok := m["uniqueItems"]; ok {
		if b, ok := uv.(bool); ok && b {
			add(schema.UniqueItems{})
		}
	}

	if iv, ok := m["items"]; ok {
		kw, err := c.buildItems(iv, m["additionalItems"], path)
		if err != nil {
			return err
		}
		add(kw)
	}

	minC, err := optionalIntPtr(m, "minContains", path)
	if err != nil {
		return err
	}
	maxC, err := optionalIntPtr(m, "maxContains", path)
	if err != nil {
		return err
	}
	if cv, ok := m["contains"]; ok {
		sub, err := c.build(cv, path+"/contains")
		if err != nil {
			return err
		}
		add(schema.Contains{Schema: sub, MinContains: minC, MaxContains: maxC})
	}
	return nil
}

func (c *Compiler) buildItems(iv, aiv any, path string) (schema.Keyword, error) {
	switch t := iv.(type) {
	case []any:
		tuple := make([]*schema.Schema, len(t))
		for i, e := range t {
			s, err := c.build(e, path+"/items")
			if err != nil {
				return nil, err
			}
			tuple[i] = s
		}
		var additional *schema.Schema
		if aiv != nil {
			s, err := c.build(aiv, path+"/additionalItems")
			if err != nil {
				return nil, err
			}
			additional = s
		}
		return schema.Items{Tuple: tuple, Additional: additional}, nil
	default:
		s, err := c.build(t, path+"/items")
		if err != nil {
			return nil, err
		}
		return schema.Items{Single: s}, nil
	}
}

func (c *Compiler) buildObjectKeywords(m map[string]any, path string, add func(schema.Keyword)) error {
	if nv, ok := m["minProperties"]; ok {
		n, err := intValue(nv, path, "minProperties")
		if err != nil {
			return err
		}
		add(schema.MinProperties{Min: n})
	}
	if nv, ok := m["maxProperties"]; ok {
		n, err := intValue(nv, path, "maxProperties")
		if err != nil {
			return err
		}
		add(schema.MaxProperties{Max: n})
	}
	if rv, ok := m["required"]; ok {
		arr, ok := rv.([]any)
		if !ok {
			return &BuilderError{Path: path, Message: "required must be an array of strings"}
		}
		if len(arr) == 0 {
			return &BuilderError{Path: path, Message: "required must not be empty"}
		}
		names := make([]string, len(arr))
		for i, e := range arr {
			s, ok := e.(string)
			if !ok {
				return &BuilderError{Path: path, Message: "required must be an array of strings"}
			}
			names[i] = s
		}
		if dup := duplicateString(names); dup != "" {
			return &BuilderError{Path: path, Message: "required must not repeat " + dup}
		}
		add(schema.Required{Names: names})
	}
	if pnv, ok := m["propertyNames"]; ok {
		sub, err := c.build(pnv, path+"/propertyNames")
		if err != nil {
			return err
		}
		add(schema.PropertyNames{Schema: sub})
	}

	_, hasProps := m["properties"]
	_, hasPatternProps := m["patternProperties"]
	_, hasAdditionalProps := m["additionalProperties"]
	if hasProps || hasPatternProps || hasAdditionalProps {
		group := schema.PropertiesGroup{}
		if pv, ok := m["properties"].(map[string]any); ok {
			group.Properties = make(map[string]*schema.Schema, len(pv))
			for k, v := range pv {
				s, err := c.build(v, path+"/properties/"+k)
				if err != nil {
					return err
				}
				group.Properties[k] = s
			}
		}
		if ppv, ok := m["patternProperties"].(map[string]any); ok {
			for k, v := range ppv {
				re, err := regexp.Compile(k)
				if err != nil {
					return &BuilderError{Path: path, Message: "invalid patternProperties pattern: " + err.Error()}
				}
				s, err := c.build(v, path+"/patternProperties/"+k)
				if err != nil {
					return err
				}
				group.Patterns = append(group.Patterns, schema.PatternSchema{Source: k, Regexp: re, Schema: s})
			}
		}
		if apv, ok := m["additionalProperties"]; ok {
			s, err := c.build(apv, path+"/additionalProperties")
			if err != nil {
				return err
			}
			group.Additional = s
		}
		add(group)
	}

	if dv, ok := m["dependencies"].(map[string]any); ok {
		entries := make(map[string]schema.DependencyEntry, len(dv))
		for k, v := range dv {
			switch t := v.(type) {
			case []any:
				names := make([]string, len(t))
				for i, e := range t {
					s, ok := e.(string)
					if !ok {
						return &BuilderError{Path: path, Message: "dependencies property list must contain only strings"}
					}
					names[i] = s
				}
				entries[k] = schema.DependencyEntry{Required: names}
			default:
				s, err := c.build(v, path+"/dependencies/"+k)
				if err != nil {
					return err
				}
				entries[k] = schema.DependencyEntry{Schema: s}
			}
		}
		add(schema.Dependencies{Entries: entries})
	}
	return nil
}

func (c *Compiler) buildCombinators(m map[string]any, path string, add func(schema.Keyword)) error {
	if av, ok := m["allOf"].([]any); ok {
		if len(av) == 0 {
			return &BuilderError{Path: path, Message: "allOf must not be empty"}
		}
		schemas, err := c.buildSchemaList(av, path+"/allOf")
		if err != nil {
			return err
		}
		add(schema.AllOf{Schemas: schemas})
	}
	if av, ok := m["anyOf"].([]any); ok {
		if len(av) == 0 {
			return &BuilderError{Path: path, Message: "anyOf must not be empty"}
		}
		schemas, err := c.buildSchemaList(av, path+"/anyOf")
		if err != nil {
			return err
		}
		add(schema.AnyOf{Schemas: schemas})
	}
	if ov, ok := m["oneOf"].([]any); ok {
		if len(ov) == 0 {
			return &BuilderError{Path: path, Message: "oneOf must not be empty"}
		}
		schemas, err := c.buildSchemaList(ov, path+"/oneOf")
		if err != nil {
			return err
		}
		add(schema.OneOf{Schemas: schemas})
	}
	if nv, ok := m["not"]; ok {
		sub, err := c.build(nv, path+"/not")
		if err != nil {
			return err
		}
		add(schema.Not{Schema: sub})
	}
	if ifv, ok := m["if"]; ok {
		ifS, err := c.build(ifv, path+"/if")
		if err != nil {
			return err
		}
		var thenS, elseS *schema.Schema
		if tv, ok := m["then"]; ok {
			thenS, err = c.build(tv, path+"/then")
			if err != nil {
				return err
			}
		}
		if ev, ok := m["else"]; ok {
			elseS, err = c.build(ev, path+"/else")
			if err != nil {
				return err
			}
		}
		add(schema.IfThenElse{If: ifS, Then: thenS, Else: elseS})
	}
	return nil
}

func (c *Compiler) buildSchemaList(arr []any, path string) ([]*schema.Schema, error) {
	out := make([]*schema.Schema, len(arr))
	for i, e := range arr {
		s, err := c.build(e, path)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
