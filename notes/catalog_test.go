package notes

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const referenceYAML = `
name: root
kind: folder
entries:
  - name: Folder 1
    kind: folder
    entries:
      - {name: note1, kind: note, title: Note 1, content: This is a note}
      - {name: note2, kind: note, title: Note 2, content: This is another note}
  - name: Folder 2
    kind: folder
    entries:
      - name: note3
        kind: note
        title: Note 3
        content: This is a third note
`

func TestLoadCatalogMatchesReference(t *testing.T) {
	root, err := LoadCatalog(strings.NewReader(referenceYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want, err := json.Marshal(Reference())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("loaded tree differs from reference:\n got %s\nwant %s", got, want)
	}
}

func TestLoadCatalogAcceptsJSON(t *testing.T) {
	doc := `{"name":"root","kind":"folder","entries":[{"name":"a","kind":"note","title":"A","content":"x"}]}`
	root, err := LoadCatalog(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := Resolve(root, URIFor("a"))
	if !ok || e.Kind() != KindNote {
		t.Fatalf("expected note a, got %v %v", e, ok)
	}
}

func TestLoadCatalogEmptyFolder(t *testing.T) {
	root, err := LoadCatalog(strings.NewReader("name: root\nkind: folder\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Len() != 0 {
		t.Fatalf("expected an empty root, got %d entries", root.Len())
	}
}

func TestLoadCatalogRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		wantMsg string
	}{
		{name: "empty document", doc: ``, wantErr: ErrInvalidCatalog, wantMsg: "empty document"},
		{name: "root is a note", doc: "name: root\nkind: note\n", wantErr: ErrInvalidCatalog, wantMsg: "top-level"},
		{name: "root misnamed", doc: "name: top\nkind: folder\n", wantErr: ErrInvalidCatalog, wantMsg: "top-level"},
		{name: "missing kind", doc: "name: root\nkind: folder\nentries:\n  - name: a\n", wantErr: ErrInvalidCatalog, wantMsg: "root/a: missing kind"},
		{name: "unknown kind", doc: "name: root\nkind: folder\nentries:\n  - {name: a, kind: link}\n", wantErr: ErrInvalidCatalog, wantMsg: `unknown kind "link"`},
		{name: "empty name", doc: "name: root\nkind: folder\nentries:\n  - {name: '', kind: note}\n", wantErr: ErrInvalidCatalog, wantMsg: "empty name"},
		{name: "slash in name", doc: "name: root\nkind: folder\nentries:\n  - {name: a/b, kind: note}\n", wantErr: ErrInvalidCatalog, wantMsg: "must not contain"},
		{name: "note with entries", doc: "name: root\nkind: folder\nentries:\n  - name: a\n    kind: note\n    entries:\n      - {name: b, kind: note}\n", wantErr: ErrInvalidCatalog, wantMsg: "cannot have entries"},
		{name: "folder with content", doc: "name: root\nkind: folder\nentries:\n  - {name: a, kind: folder, content: x}\n", wantErr: ErrInvalidCatalog, wantMsg: "only valid on notes"},
		{name: "duplicate siblings", doc: "name: root\nkind: folder\nentries:\n  - {name: a, kind: note}\n  - {name: a, kind: folder}\n", wantErr: ErrDuplicateName, wantMsg: "root/a"},
		{name: "unknown field", doc: "name: root\nkind: folder\ncolor: red\n", wantErr: ErrInvalidCatalog, wantMsg: "color"},
		{name: "not yaml", doc: "name: [root\n", wantErr: ErrInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	if err := os.WriteFile(path, []byte(referenceYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	root, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := Resolve(root, "simple_resource://root/Folder 2/note3"); !ok {
		t.Fatal("expected note3 to resolve in the loaded catalog")
	}

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
