package notes

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCatalog is wrapped by every catalog validation failure.
	ErrInvalidCatalog = errors.New("notes: invalid catalog")
	// ErrDuplicateName reports two siblings sharing a name. Only the first
	// of them would ever be reachable by URI.
	ErrDuplicateName = fmt.Errorf("%w: duplicate sibling name", ErrInvalidCatalog)
)

type catalogNode struct {
	Name    string        `yaml:"name"`
	Kind    string        `yaml:"kind"`
	Title   string        `yaml:"title,omitempty"`
	Content string        `yaml:"content,omitempty"`
	Entries []catalogNode `yaml:"entries,omitempty"`
}

// LoadCatalog reads a tree from a YAML (or JSON) document. Every node names
// its kind explicitly:
//
//	name: root
//	kind: folder
//	entries:
//	  - name: Folder 1
//	    kind: folder
//	    entries:
//	      - {name: note1, kind: note, title: Note 1, content: This is a note}
//
// The top-level node must be a folder named "root". Names must be non-empty,
// must not contain "/" and must be unique among siblings.
func LoadCatalog(r io.Reader) (*Folder, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogNode
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if doc.Kind != KindFolder.String() || doc.Name != "root" {
		return nil, fmt.Errorf("%w: top-level node must be a folder named \"root\"", ErrInvalidCatalog)
	}

	root, err := buildEntry(doc, nil)
	if err != nil {
		return nil, err
	}
	return root.(*Folder), nil
}

// LoadCatalogFile opens path and loads it with LoadCatalog.
func LoadCatalogFile(path string) (*Folder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	root, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return root, nil
}

func buildEntry(n catalogNode, parent []string) (Entry, error) {
	path := append(append([]string(nil), parent...), n.Name)
	where := strings.Join(path, "/")

	if n.Name == "" {
		return nil, fmt.Errorf("%w: %s: empty name", ErrInvalidCatalog, where)
	}
	if strings.Contains(n.Name, "/") {
		return nil, fmt.Errorf("%w: %s: name must not contain \"/\"", ErrInvalidCatalog, where)
	}

	switch n.Kind {
	case KindNote.String():
		if len(n.Entries) > 0 {
			return nil, fmt.Errorf("%w: %s: a note cannot have entries", ErrInvalidCatalog, where)
		}
		return NewNote(n.Name, n.Title, n.Content), nil

	case KindFolder.String():
		if n.Title != "" || n.Content != "" {
			return nil, fmt.Errorf("%w: %s: title and content are only valid on notes", ErrInvalidCatalog, where)
		}
		seen := make(map[string]struct{}, len(n.Entries))
		entries := make([]Entry, 0, len(n.Entries))
		for _, child := range n.Entries {
			if _, dup := seen[child.Name]; dup {
				return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateName, where, child.Name)
			}
			seen[child.Name] = struct{}{}

			e, err := buildEntry(child, path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return NewFolder(n.Name, entries...), nil

	case "":
		return nil, fmt.Errorf("%w: %s: missing kind", ErrInvalidCatalog, where)
	default:
		return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidCatalog, where, n.Kind)
	}
}
