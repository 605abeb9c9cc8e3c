package notes

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReferenceShape(t *testing.T) {
	root := Reference()
	if root.Name() != "root" || root.Kind() != KindFolder {
		t.Fatalf("unexpected root %s %q", root.Kind(), root.Name())
	}

	type flat struct {
		Path, Kind, Title, Content string
	}
	var got []flat
	_ = Walk(root, func(path []string, e Entry) error {
		f := flat{Path: URIFor(path...), Kind: e.Kind().String()}
		if e.Kind() == KindNote {
			n := e.(*Note)
			f.Title, f.Content = n.Title(), n.Content()
		}
		got = append(got, f)
		return nil
	})

	want := []flat{
		{Path: "simple_resource://root/Folder 1", Kind: "folder"},
		{Path: "simple_resource://root/Folder 1/note1", Kind: "note", Title: "Note 1", Content: "This is a note"},
		{Path: "simple_resource://root/Folder 1/note2", Kind: "note", Title: "Note 2", Content: "This is another note"},
		{Path: "simple_resource://root/Folder 2", Kind: "folder"},
		{Path: "simple_resource://root/Folder 2/note3", Kind: "note", Title: "Note 3", Content: "This is a third note"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reference tree mismatch (-want +got):\n%s", diff)
	}
}

func TestReferenceIsShared(t *testing.T) {
	if Reference() != Reference() {
		t.Fatal("Reference should return the same tree every time")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	root := Reference()
	entries := root.Entries()
	entries[0] = NewNote("intruder", "", "")
	if e, _ := root.Child("Folder 1"); e == nil {
		t.Fatal("mutating the returned slice changed the tree")
	}
	if root.Entries()[0].Name() != "Folder 1" {
		t.Fatal("mutating the returned slice changed the tree")
	}
}

func TestNewFolderCopiesInput(t *testing.T) {
	in := []Entry{NewNote("a", "", "")}
	f := NewFolder("f", in...)
	in[0] = NewNote("b", "", "")
	if f.Entries()[0].Name() != "a" {
		t.Fatal("NewFolder must not alias its argument")
	}
}

func TestPrettyNote(t *testing.T) {
	e, _ := Resolve(Reference(), "simple_resource://root/Folder 1/note1")
	got, err := Pretty(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{
  "name": "note1",
  "title": "Note 1",
  "content": "This is a note"
}`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyFolder(t *testing.T) {
	e, _ := Resolve(Reference(), "simple_resource://root/Folder 2")
	got, err := Pretty(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{
  "name": "Folder 2",
  "entries": [
    {
      "name": "note3",
      "title": "Note 3",
      "content": "This is a third note"
    }
  ]
}`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyEmptyFolderAndEscaping(t *testing.T) {
	got, err := Pretty(NewFolder("empty"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "{\n  \"name\": \"empty\",\n  \"entries\": []\n}"; got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	got, err = Pretty(NewNote("n", "<b>", "a & b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"name\": \"n\",\n  \"title\": \"<b>\",\n  \"content\": \"a & b\"\n}"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRootJSONMatchesTree(t *testing.T) {
	b, err := json.Marshal(Reference())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"name": "root",
		"entries": []any{
			map[string]any{"name": "Folder 1", "entries": []any{
				map[string]any{"name": "note1", "title": "Note 1", "content": "This is a note"},
				map[string]any{"name": "note2", "title": "Note 2", "content": "This is another note"},
			}},
			map[string]any{"name": "Folder 2", "entries": []any{
				map[string]any{"name": "note3", "title": "Note 3", "content": "This is a third note"},
			}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
