package notes

import "strings"

const (
	// Scheme is the URI scheme of every note resource.
	Scheme = "simple_resource"
	// RootURI addresses the root folder.
	RootURI = Scheme + "://root"

	rootPrefix = RootURI + "/"
)

// Resolve maps a resource URI onto an entry of root.
//
// RootURI yields root itself. Any other URI must start with RootURI+"/"; the
// remainder is split on "/" and each segment selects the first child of that
// name. Segments are compared literally, with no percent-decoding, and empty
// segments are kept, so "simple_resource://root/" never matches. Resolution
// fails when a segment has no match or when segments remain after a note.
//
// The prefix is required: a bare path such as "Folder 1/note1" does not
// resolve.
func Resolve(root *Folder, uri string) (Entry, bool) {
	if uri == RootURI {
		return root, true
	}
	rest, ok := strings.CutPrefix(uri, rootPrefix)
	if !ok {
		return nil, false
	}

	segments := strings.Split(rest, "/")
	current := root
	for i, seg := range segments {
		child, ok := current.Child(seg)
		if !ok {
			return nil, false
		}
		if i == len(segments)-1 {
			return child, true
		}
		if child.Kind() != KindFolder {
			return nil, false
		}
		current = child.(*Folder)
	}
	return nil, false
}

// URIFor builds the URI of the entry reached by the given path segments
// below the root. URIFor() is RootURI.
func URIFor(segments ...string) string {
	if len(segments) == 0 {
		return RootURI
	}
	return rootPrefix + strings.Join(segments, "/")
}
