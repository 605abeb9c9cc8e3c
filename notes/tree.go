package notes

import (
	"bytes"
	"encoding/json"
)

// Kind discriminates the two entry variants of the tree.
type Kind int

const (
	KindFolder Kind = iota + 1
	KindNote
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindNote:
		return "note"
	default:
		return "unknown"
	}
}

// Entry is a node of the tree: either a *Folder or a *Note. Code that needs
// the concrete variant switches on Kind.
type Entry interface {
	Name() string
	Kind() Kind
	json.Marshaler
}

// Note is a leaf holding text content.
type Note struct {
	name    string
	title   string
	content string
}

// NewNote builds a note.
func NewNote(name, title, content string) *Note {
	return &Note{name: name, title: title, content: content}
}

func (n *Note) Name() string    { return n.name }
func (n *Note) Kind() Kind      { return KindNote }
func (n *Note) Title() string   { return n.title }
func (n *Note) Content() string { return n.content }

// MarshalJSON renders the note as {"name","title","content"} in that order.
func (n *Note) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Name    string `json:"name"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}{n.name, n.title, n.content})
}

// Folder is an ordered container of entries. A folder owns its entries
// exclusively; entries never point back at their parent.
type Folder struct {
	name    string
	entries []Entry
}

// NewFolder builds a folder holding entries in the given order. The slice is
// copied, so later changes by the caller do not leak into the tree.
func NewFolder(name string, entries ...Entry) *Folder {
	return &Folder{name: name, entries: append([]Entry(nil), entries...)}
}

func (f *Folder) Name() string { return f.name }
func (f *Folder) Kind() Kind   { return KindFolder }

// Entries returns the children in order. The returned slice is a copy.
func (f *Folder) Entries() []Entry {
	return append([]Entry(nil), f.entries...)
}

// Len reports the number of direct children.
func (f *Folder) Len() int { return len(f.entries) }

// Child returns the first direct child named name.
func (f *Folder) Child(name string) (Entry, bool) {
	for _, e := range f.entries {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// MarshalJSON renders the folder as {"name","entries"} with entries recursively
// encoded. An empty folder has "entries": [].
func (f *Folder) MarshalJSON() ([]byte, error) {
	entries := f.entries
	if entries == nil {
		entries = []Entry{}
	}
	return marshal(struct {
		Name    string  `json:"name"`
		Entries []Entry `json:"entries"`
	}{f.name, entries})
}

// marshal is json.Marshal without HTML escaping, so note text keeps its
// "<", ">" and "&" characters verbatim.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Pretty renders an entry as two-space indented JSON without HTML escaping,
// the body format of resource reads.
func Pretty(e Entry) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Walk calls fn for every entry below root in depth-first order, passing the
// path segments that lead to it. Walk stops at the first error.
func Walk(root *Folder, fn func(path []string, e Entry) error) error {
	return walk(root, nil, fn)
}

func walk(f *Folder, prefix []string, fn func([]string, Entry) error) error {
	for _, e := range f.entries {
		path := append(append([]string(nil), prefix...), e.Name())
		if err := fn(path, e); err != nil {
			return err
		}
		if e.Kind() == KindFolder {
			if err := walk(e.(*Folder), path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

var reference = NewFolder("root",
	NewFolder("Folder 1",
		NewNote("note1", "Note 1", "This is a note"),
		NewNote("note2", "Note 2", "This is another note"),
	),
	NewFolder("Folder 2",
		NewNote("note3", "Note 3", "This is a third note"),
	),
)

// Reference returns the built-in note collection. The tree is built once and
// shared; it cannot be modified through its API.
func Reference() *Folder {
	return reference
}
