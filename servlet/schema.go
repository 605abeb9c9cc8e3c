package servlet

import (
	"maps"

	"github.com/invopop/jsonschema"

	"github.com/ggoodman/simple-resource/mcp"
)

// callArguments describes the arguments the tool advertises. Call does not
// read them.
type callArguments struct {
	URI string `json:"uri,omitempty" jsonschema:"description=The URI of the resource to read"`
}

// callArgumentsSchema reflects callArguments into an object schema holding
// only type, properties and (when non-empty) required.
func callArgumentsSchema() mcp.Object {
	return reflectInputSchema[callArguments]()
}

func reflectInputSchema[A any]() mcp.Object {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(new(A))

	props := mcp.Object{}
	if s != nil && s.Properties != nil {
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			props[el.Key] = schemaProperty(el.Value)
		}
	}

	out := mcp.Object{
		"type":       "object",
		"properties": props,
	}
	if s != nil && len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, name := range s.Required {
			required[i] = name
		}
		out["required"] = required
	}
	return out
}

func schemaProperty(s *jsonschema.Schema) mcp.Object {
	p := mcp.Object{}
	if s == nil {
		return p
	}
	if s.Type != "" {
		p["type"] = s.Type
	}
	if s.Description != "" {
		p["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		p["enum"] = append([]any(nil), s.Enum...)
	}
	if s.Type == "array" && s.Items != nil {
		p["items"] = schemaProperty(s.Items)
	}
	if s.Type == "object" && s.Properties != nil {
		nested := make(mcp.Object, s.Properties.Len())
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			nested[el.Key] = schemaProperty(el.Value)
		}
		p["properties"] = nested
	}
	return p
}

// cloneObject deep-copies o along with any nested Objects and slices.
func cloneObject(o mcp.Object) mcp.Object {
	if o == nil {
		return nil
	}
	out := maps.Clone(o)
	for k, v := range out {
		switch v := v.(type) {
		case mcp.Object:
			out[k] = cloneObject(v)
		case []any:
			cp := make([]any, len(v))
			for i, item := range v {
				if m, ok := item.(mcp.Object); ok {
					cp[i] = cloneObject(m)
				} else {
					cp[i] = item
				}
			}
			out[k] = cp
		}
	}
	return out
}
