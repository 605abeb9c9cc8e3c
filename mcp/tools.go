package mcp

import "encoding/json"

// CallToolRequest is the input of the call entry point.
type CallToolRequest struct {
	Method *string
	Params *CallToolParams
	Extra  Object
}

// CallToolRequestFromObject converts a generic document into a
// CallToolRequest. A nil object yields a nil request.
func CallToolRequestFromObject(obj Object) (*CallToolRequest, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &CallToolRequest{
		Method: r.optStr("method"),
		Params: record(r, "params", CallToolParamsFromObject),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *CallToolRequest) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("method", x.Method).
		optObject("params", x.Params.ToObject()).
		obj
}

func (x CallToolRequest) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *CallToolRequest) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, CallToolRequestFromObject)
}

// CallToolParams names the tool to call and carries its arguments.
type CallToolParams struct {
	Arguments map[string]any
	Name      string
	Extra     Object
}

func CallToolParamsFromObject(obj Object) (*CallToolParams, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	args, err := castMap(r.object("arguments"), func(v any) (any, error) { return v, nil })
	if err != nil {
		return nil, nest("arguments", err)
	}
	out := &CallToolParams{
		Arguments: args,
		Name:      r.str("name"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *CallToolParams) ToObject() Object {
	if x == nil {
		return nil
	}
	w := newWriter(x.Extra)
	if x.Arguments != nil {
		w.set("arguments", Object(x.Arguments))
	}
	return w.set("name", x.Name).obj
}

func (x CallToolParams) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *CallToolParams) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, CallToolParamsFromObject)
}

// CallToolResult is the output of the call entry point. Tool-level failures
// are reported with IsError set rather than as a protocol error.
type CallToolResult struct {
	Meta    Object
	Content []Content
	IsError *bool
	Extra   Object
}

func CallToolResultFromObject(obj Object) (*CallToolResult, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &CallToolResult{
		Meta:    r.object("_meta"),
		Content: records(r, "content", ContentFromObject),
		IsError: r.optBool("isError"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *CallToolResult) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("_meta", x.Meta).
		set("content", requiredSlice(mapSlice(x.Content, func(c *Content) any { return c.ToObject() }))).
		optBool("isError", x.IsError).
		obj
}

func (x CallToolResult) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *CallToolResult) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, CallToolResultFromObject)
}

// Content is one block of a tool result: text, an image, or an embedded
// resource, discriminated by Type.
type Content struct {
	Resource    *EmbeddedResourceContents
	Annotations *TextAnnotation
	// Data is base64 image data.
	Data     *string
	MIMEType *string
	Text     *string
	Type     ContentType
	Extra    Object
}

// TextContent builds a text content block.
func TextContent(text string) Content {
	return Content{Type: ContentTypeText, Text: &text}
}

func ContentFromObject(obj Object) (*Content, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &Content{
		Resource:    record(r, "resource", EmbeddedResourceContentsFromObject),
		Annotations: record(r, "annotations", TextAnnotationFromObject),
		Data:        r.optStr("data"),
		MIMEType:    r.optStr("mimeType"),
		Text:        r.optStr("text"),
		Type:        ContentType(r.str("type")),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *Content) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("resource", x.Resource.ToObject()).
		optObject("annotations", x.Annotations.ToObject()).
		optStr("data", x.Data).
		optStr("mimeType", x.MIMEType).
		optStr("text", x.Text).
		set("type", string(x.Type)).
		obj
}

func (x Content) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *Content) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ContentFromObject)
}

// TextAnnotation carries audience and priority hints for a content block.
type TextAnnotation struct {
	Audience []Role
	Priority *float64
	Extra    Object
}

func TextAnnotationFromObject(obj Object) (*TextAnnotation, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	audience, err := castSlice(r.array("audience"), func(v any) (Role, error) {
		s, ok := v.(string)
		if !ok {
			return "", &FieldError{Want: "string", Got: v}
		}
		return Role(s), nil
	})
	if err != nil {
		return nil, nest("audience", err)
	}
	out := &TextAnnotation{
		Audience: audience,
		Priority: r.optNumber("priority"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *TextAnnotation) ToObject() Object {
	if x == nil {
		return nil
	}
	w := newWriter(x.Extra)
	if x.Audience != nil {
		w.set("audience", mapSlice(x.Audience, func(r *Role) any { return string(*r) }))
	}
	return w.optNumber("priority", x.Priority).obj
}

func (x TextAnnotation) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *TextAnnotation) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, TextAnnotationFromObject)
}

// ToolDescription is the output of the describe entry point.
type ToolDescription struct {
	Description string
	// InputSchema is a JSON Schema document, usually an Object.
	InputSchema any
	Name        string
	Extra       Object
}

func ToolDescriptionFromObject(obj Object) (*ToolDescription, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ToolDescription{
		Description: r.str("description"),
		InputSchema: r.raw("inputSchema"),
		Name:        r.str("name"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ToolDescription) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		set("description", x.Description).
		set("inputSchema", x.InputSchema).
		set("name", x.Name).
		obj
}

func (x ToolDescription) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ToolDescription) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ToolDescriptionFromObject)
}
