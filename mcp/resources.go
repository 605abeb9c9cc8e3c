package mcp

import "encoding/json"

// Resource is an addressable resource advertised by list_resources.
type Resource struct {
	Description *string
	MIMEType    *string
	Name        string
	URI         string
	Extra       Object
}

func ResourceFromObject(obj Object) (*Resource, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &Resource{
		Description: r.optStr("description"),
		MIMEType:    r.optStr("mimeType"),
		Name:        r.str("name"),
		URI:         r.str("uri"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *Resource) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("description", x.Description).
		optStr("mimeType", x.MIMEType).
		set("name", x.Name).
		set("uri", x.URI).
		obj
}

func (x Resource) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *Resource) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ResourceFromObject)
}

// ResourceTemplate advertises a family of resource URIs.
type ResourceTemplate struct {
	Description *string
	MIMEType    *string
	Name        string
	URITemplate string
	Extra       Object
}

func ResourceTemplateFromObject(obj Object) (*ResourceTemplate, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ResourceTemplate{
		Description: r.optStr("description"),
		MIMEType:    r.optStr("mimeType"),
		Name:        r.str("name"),
		URITemplate: r.str("uriTemplate"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ResourceTemplate) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("description", x.Description).
		optStr("mimeType", x.MIMEType).
		set("name", x.Name).
		set("uriTemplate", x.URITemplate).
		obj
}

func (x ResourceTemplate) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ResourceTemplate) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ResourceTemplateFromObject)
}

// ResourceContents is one item of a read_resource result. Exactly one of
// Text or Blob is normally set.
type ResourceContents struct {
	// Blob is base64 encoded binary data.
	Blob     *string
	MIMEType *string
	Text     *string
	URI      string
	Extra    Object
}

func ResourceContentsFromObject(obj Object) (*ResourceContents, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ResourceContents{
		Blob:     r.optStr("blob"),
		MIMEType: r.optStr("mimeType"),
		Text:     r.optStr("text"),
		URI:      r.str("uri"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ResourceContents) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("blob", x.Blob).
		optStr("mimeType", x.MIMEType).
		optStr("text", x.Text).
		set("uri", x.URI).
		obj
}

func (x ResourceContents) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ResourceContents) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ResourceContentsFromObject)
}

// TextResourceContents is the text variant of embedded resource contents.
type TextResourceContents struct {
	MIMEType *string
	Text     string
	URI      string
	Extra    Object
}

func TextResourceContentsFromObject(obj Object) (*TextResourceContents, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &TextResourceContents{
		MIMEType: r.optStr("mimeType"),
		Text:     r.str("text"),
		URI:      r.str("uri"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *TextResourceContents) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("mimeType", x.MIMEType).
		set("text", x.Text).
		set("uri", x.URI).
		obj
}

func (x TextResourceContents) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *TextResourceContents) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, TextResourceContentsFromObject)
}

// BlobResourceContents is the binary variant of embedded resource contents.
type BlobResourceContents struct {
	Blob     string
	MIMEType *string
	URI      string
	Extra    Object
}

func BlobResourceContentsFromObject(obj Object) (*BlobResourceContents, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &BlobResourceContents{
		Blob:     r.str("blob"),
		MIMEType: r.optStr("mimeType"),
		URI:      r.str("uri"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *BlobResourceContents) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		set("blob", x.Blob).
		optStr("mimeType", x.MIMEType).
		set("uri", x.URI).
		obj
}

func (x BlobResourceContents) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *BlobResourceContents) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, BlobResourceContentsFromObject)
}

// EmbeddedResourceContents is a resource inlined into a tool result.
type EmbeddedResourceContents struct {
	Blob  *BlobResourceContents
	Text  *TextResourceContents
	URI   string
	Extra Object
}

func EmbeddedResourceContentsFromObject(obj Object) (*EmbeddedResourceContents, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &EmbeddedResourceContents{
		Blob: record(r, "blob", BlobResourceContentsFromObject),
		Text: record(r, "text", TextResourceContentsFromObject),
		URI:  r.str("uri"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *EmbeddedResourceContents) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("blob", x.Blob.ToObject()).
		optObject("text", x.Text.ToObject()).
		set("uri", x.URI).
		obj
}

func (x EmbeddedResourceContents) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *EmbeddedResourceContents) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, EmbeddedResourceContentsFromObject)
}

// ListResourcesRequest is the optional input of list_resources.
type ListResourcesRequest struct {
	Method *string
	Params *ListResourcesRequestParams
	Extra  Object
}

func ListResourcesRequestFromObject(obj Object) (*ListResourcesRequest, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ListResourcesRequest{
		Method: r.optStr("method"),
		Params: record(r, "params", ListResourcesRequestParamsFromObject),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ListResourcesRequest) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("method", x.Method).
		optObject("params", x.Params.ToObject()).
		obj
}

func (x ListResourcesRequest) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ListResourcesRequest) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ListResourcesRequestFromObject)
}

// ListResourcesRequestParams carries the pagination cursor.
type ListResourcesRequestParams struct {
	Meta   Object
	Cursor *string
	Extra  Object
}

func ListResourcesRequestParamsFromObject(obj Object) (*ListResourcesRequestParams, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ListResourcesRequestParams{
		Meta:   r.object("_meta"),
		Cursor: r.optStr("cursor"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ListResourcesRequestParams) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("_meta", x.Meta).
		optStr("cursor", x.Cursor).
		obj
}

func (x ListResourcesRequestParams) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ListResourcesRequestParams) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ListResourcesRequestParamsFromObject)
}

// ListResourcesResult is the output of list_resources.
type ListResourcesResult struct {
	NextCursor *string
	Resources  []Resource
	Extra      Object
}

func ListResourcesResultFromObject(obj Object) (*ListResourcesResult, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ListResourcesResult{
		NextCursor: r.optStr("nextCursor"),
		Resources:  records(r, "resources", ResourceFromObject),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ListResourcesResult) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("nextCursor", x.NextCursor).
		set("resources", requiredSlice(mapSlice(x.Resources, func(v *Resource) any { return v.ToObject() }))).
		obj
}

func (x ListResourcesResult) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ListResourcesResult) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ListResourcesResultFromObject)
}

// ListResourceTemplatesRequest is the optional input of
// list_resource_templates.
type ListResourceTemplatesRequest struct {
	Method *string
	Params *ListResourceTemplatesRequestParams
	Extra  Object
}

func ListResourceTemplatesRequestFromObject(obj Object) (*ListResourceTemplatesRequest, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ListResourceTemplatesRequest{
		Method: r.optStr("method"),
		Params: record(r, "params", ListResourceTemplatesRequestParamsFromObject),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ListResourceTemplatesRequest) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("method", x.Method).
		optObject("params", x.Params.ToObject()).
		obj
}

func (x ListResourceTemplatesRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ToObject())
}

func (x *ListResourceTemplatesRequest) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ListResourceTemplatesRequestFromObject)
}

// ListResourceTemplatesRequestParams carries the pagination cursor.
type ListResourceTemplatesRequestParams struct {
	Meta   Object
	Cursor *string
	Extra  Object
}

func ListResourceTemplatesRequestParamsFromObject(obj Object) (*ListResourceTemplatesRequestParams, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ListResourceTemplatesRequestParams{
		Meta:   r.object("_meta"),
		Cursor: r.optStr("cursor"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ListResourceTemplatesRequestParams) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("_meta", x.Meta).
		optStr("cursor", x.Cursor).
		obj
}

func (x ListResourceTemplatesRequestParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ToObject())
}

func (x *ListResourceTemplatesRequestParams) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ListResourceTemplatesRequestParamsFromObject)
}

// ListResourceTemplatesResult is the output of list_resource_templates.
type ListResourceTemplatesResult struct {
	NextCursor        *string
	ResourceTemplates []ResourceTemplate
	Extra             Object
}

func ListResourceTemplatesResultFromObject(obj Object) (*ListResourceTemplatesResult, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ListResourceTemplatesResult{
		NextCursor:        r.optStr("nextCursor"),
		ResourceTemplates: records(r, "resourceTemplates", ResourceTemplateFromObject),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ListResourceTemplatesResult) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("nextCursor", x.NextCursor).
		set("resourceTemplates", requiredSlice(mapSlice(x.ResourceTemplates, func(v *ResourceTemplate) any { return v.ToObject() }))).
		obj
}

func (x ListResourceTemplatesResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.ToObject())
}

func (x *ListResourceTemplatesResult) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ListResourceTemplatesResultFromObject)
}

// ReadResourceRequest is the input of read_resource.
type ReadResourceRequest struct {
	Method *string
	Params *ReadResourceRequestParams
	Extra  Object
}

func ReadResourceRequestFromObject(obj Object) (*ReadResourceRequest, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ReadResourceRequest{
		Method: r.optStr("method"),
		Params: record(r, "params", ReadResourceRequestParamsFromObject),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ReadResourceRequest) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optStr("method", x.Method).
		optObject("params", x.Params.ToObject()).
		obj
}

func (x ReadResourceRequest) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ReadResourceRequest) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ReadResourceRequestFromObject)
}

// ReadResourceRequestParams names the resource to read.
type ReadResourceRequestParams struct {
	Meta  Object
	URI   *string
	Extra Object
}

func ReadResourceRequestParamsFromObject(obj Object) (*ReadResourceRequestParams, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ReadResourceRequestParams{
		Meta: r.object("_meta"),
		URI:  r.optStr("uri"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ReadResourceRequestParams) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("_meta", x.Meta).
		optStr("uri", x.URI).
		obj
}

func (x ReadResourceRequestParams) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ReadResourceRequestParams) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ReadResourceRequestParamsFromObject)
}

// ReadResourceResult is the output of read_resource.
type ReadResourceResult struct {
	Meta     Object
	Contents []ResourceContents
	IsError  *bool
	Extra    Object
}

func ReadResourceResultFromObject(obj Object) (*ReadResourceResult, error) {
	if obj == nil {
		return nil, nil
	}
	r := newReader(obj)
	out := &ReadResourceResult{
		Meta:     r.object("_meta"),
		Contents: records(r, "contents", ResourceContentsFromObject),
		IsError:  r.optBool("isError"),
	}
	if r.err != nil {
		return nil, r.err
	}
	out.Extra = r.extra()
	return out, nil
}

func (x *ReadResourceResult) ToObject() Object {
	if x == nil {
		return nil
	}
	return newWriter(x.Extra).
		optObject("_meta", x.Meta).
		set("contents", requiredSlice(mapSlice(x.Contents, func(v *ResourceContents) any { return v.ToObject() }))).
		optBool("isError", x.IsError).
		obj
}

func (x ReadResourceResult) MarshalJSON() ([]byte, error) { return json.Marshal(x.ToObject()) }

func (x *ReadResourceResult) UnmarshalJSON(data []byte) error {
	return unmarshalInto(x, data, ReadResourceResultFromObject)
}
