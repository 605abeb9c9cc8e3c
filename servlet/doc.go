// Package servlet implements the notes plugin: one informational tool and a
// read-only resource surface over a notes.Folder tree.
//
// The five operations are available both as typed methods (Call, Describe,
// ListResourceTemplates, ListResources, ReadResource) and as named entry
// points run through Invoke, which reads a JSON request from a Host and
// writes the JSON result back:
//
//	s := servlet.New()
//	h := &servlet.BufferHost{In: []byte(`{"params":{"uri":"simple_resource://root"}}`)}
//	if err := s.Invoke(ctx, servlet.EntryPointReadResource, h); err != nil {
//		// errors.Is(err, servlet.ErrResourceNotFound) or servlet.ErrInvalidRequest
//	}
//
// A Servlet holds no mutable state and is safe for concurrent use.
package servlet
