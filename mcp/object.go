package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
)

// Object is a generic decoded JSON document as handed over by a host: the
// result of unmarshalling a JSON object into a map[string]any.
type Object = map[string]any

// ErrMalformed is wrapped by every error returned from the FromObject
// family when a document does not fit the declared record shape.
var ErrMalformed = errors.New("mcp: malformed object")

// FieldError reports a declared field holding a value of the wrong JSON type.
type FieldError struct {
	// Path is the dotted path of the offending field, e.g. "params.uri" or
	// "content[2].type".
	Path string
	// Want names the expected JSON type.
	Want string
	// Got is the value that was found.
	Got any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("mcp: field %q: expected %s, got %s", e.Path, e.Want, jsonTypeName(e.Got))
}

func (e *FieldError) Unwrap() error { return ErrMalformed }

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// nest prefixes the path of a FieldError produced while converting a nested
// record so the final error names the full location.
func nest(prefix string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		path := prefix
		if fe.Path != "" {
			if fe.Path[0] == '[' {
				path += fe.Path
			} else {
				path += "." + fe.Path
			}
		}
		return &FieldError{Path: path, Want: fe.Want, Got: fe.Got}
	}
	return err
}

// reader pulls declared fields out of an Object, remembering which keys were
// consumed so the rest can be kept as extra fields. The first error sticks;
// later reads become no-ops.
type reader struct {
	obj  Object
	seen map[string]struct{}
	err  error
}

func newReader(obj Object) *reader {
	return &reader{obj: obj, seen: make(map[string]struct{}, len(obj))}
}

func (r *reader) lookup(key string) (any, bool) {
	r.seen[key] = struct{}{}
	if r.err != nil {
		return nil, false
	}
	v, ok := r.obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) fail(key, want string, got any) {
	if r.err == nil {
		r.err = &FieldError{Path: key, Want: want, Got: got}
	}
}

func (r *reader) str(key string) string {
	if p := r.optStr(key); p != nil {
		return *p
	}
	return ""
}

func (r *reader) optStr(key string) *string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, "string", v)
		return nil
	}
	return &s
}

func (r *reader) optBool(key string) *bool {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(key, "boolean", v)
		return nil
	}
	return &b
}

func (r *reader) optNumber(key string) *float64 {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			r.fail(key, "number", v)
			return nil
		}
		return &f
	default:
		r.fail(key, "number", v)
		return nil
	}
}

func (r *reader) object(key string) Object {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	o, ok := v.(map[string]any)
	if !ok {
		r.fail(key, "object", v)
		return nil
	}
	return o
}

func (r *reader) array(key string) []any {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		r.fail(key, "array", v)
		return nil
	}
	return a
}

// raw returns the value of a field declared with no fixed shape.
func (r *reader) raw(key string) any {
	v, _ := r.lookup(key)
	return v
}

// record converts a nested object field with from. An absent or null field
// yields nil.
func record[T any](r *reader, key string, from func(Object) (*T, error)) *T {
	o := r.object(key)
	if o == nil || r.err != nil {
		return nil
	}
	v, err := from(o)
	if err != nil {
		r.err = nest(key, err)
		return nil
	}
	return v
}

// records converts an array-of-objects field with from.
func records[T any](r *reader, key string, from func(Object) (*T, error)) []T {
	a := r.array(key)
	if a == nil || r.err != nil {
		return nil
	}
	out, err := castSlice(a, func(v any) (T, error) {
		var zero T
		o, ok := v.(map[string]any)
		if !ok {
			return zero, &FieldError{Want: "object", Got: v}
		}
		rec, err := from(o)
		if err != nil {
			return zero, err
		}
		return *rec, nil
	})
	if err != nil {
		r.err = nest(key, err)
		return nil
	}
	return out
}

// extra returns the keys that were not read as declared fields, or nil when
// there are none.
func (r *reader) extra() Object {
	var out Object
	for k, v := range r.obj {
		if _, ok := r.seen[k]; ok {
			continue
		}
		if out == nil {
			out = make(Object)
		}
		out[k] = v
	}
	return out
}

// castSlice converts every element of items with conv, keeping order. A nil
// slice stays nil so absent arrays round-trip as absent.
func castSlice[T any](items []any, conv func(any) (T, error)) ([]T, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := conv(item)
		if err != nil {
			return nil, nest(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// castMap converts every value of m with conv, keeping the key set. A nil
// map stays nil.
func castMap[T any](m map[string]any, conv func(any) (T, error)) (map[string]T, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]T, len(m))
	for k, item := range m {
		v, err := conv(item)
		if err != nil {
			return nil, nest(k, err)
		}
		out[k] = v
	}
	return out, nil
}

// writer builds the object form of a record. Extra keys are laid down first
// so declared fields always win.
type writer struct {
	obj Object
}

func newWriter(extra Object) *writer {
	obj := make(Object, len(extra)+4)
	maps.Copy(obj, extra)
	return &writer{obj: obj}
}

func (w *writer) set(key string, v any) *writer {
	w.obj[key] = v
	return w
}

func (w *writer) optStr(key string, v *string) *writer {
	if v != nil {
		w.obj[key] = *v
	}
	return w
}

func (w *writer) optBool(key string, v *bool) *writer {
	if v != nil {
		w.obj[key] = *v
	}
	return w
}

func (w *writer) optNumber(key string, v *float64) *writer {
	if v != nil {
		w.obj[key] = *v
	}
	return w
}

func (w *writer) optAny(key string, v any) *writer {
	if v != nil {
		w.obj[key] = v
	}
	return w
}

// optObject stores o unless it is nil.
func (w *writer) optObject(key string, o Object) *writer {
	if o != nil {
		w.obj[key] = o
	}
	return w
}

// mapSlice converts typed elements back into generic values.
func mapSlice[T any](items []T, conv func(*T) any) []any {
	if items == nil {
		return nil
	}
	out := make([]any, len(items))
	for i := range items {
		out[i] = conv(&items[i])
	}
	return out
}

// Decode parses a JSON document and converts it with from. The document must
// be a JSON object or null; null decodes to a nil record.
func Decode[T any](data []byte, from func(Object) (*T, error)) (*T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &FieldError{Want: "object", Got: v}
	}
	return from(obj)
}

// ObjectEncoder is implemented by every record in this package.
type ObjectEncoder interface {
	ToObject() Object
}

// Encode renders a record as compact JSON.
func Encode(v ObjectEncoder) ([]byte, error) {
	return json.Marshal(v.ToObject())
}

func unmarshalInto[T any](dst *T, data []byte, from func(Object) (*T, error)) error {
	rec, err := Decode(data, from)
	if err != nil {
		return err
	}
	if rec == nil {
		var zero T
		*dst = zero
		return nil
	}
	*dst = *rec
	return nil
}

// requiredSlice makes sure a required array field is emitted as [] rather
// than null.
func requiredSlice(items []any) []any {
	if items == nil {
		return []any{}
	}
	return items
}

// Ptr returns a pointer to v. It is handy for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}
