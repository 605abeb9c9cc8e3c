package servlet

import (
	"context"
	"log/slog"

	"github.com/ggoodman/simple-resource/internal/logctx"
	"github.com/ggoodman/simple-resource/mcp"
	"github.com/ggoodman/simple-resource/notes"
)

const (
	// ToolName is the name of the single advertised tool.
	ToolName = "simple_resource"

	// MIMETypeJSON is the type of folder listings and resource bodies.
	MIMETypeJSON = "application/json"
	// MIMETypeText is the type advertised for notes by the note template.
	MIMETypeText = "text/plain"

	callText = "Hello, there are more notes available. Use the list_resources and read_resource endpoints to get the notes. " +
		"The list_resources endpoint will give you the root folder, and the read_resource endpoint will give you the contents of the notes. " +
		"The scheme is simple_resource. An example URI is simple_resource://root/Folder 1/note1"

	toolDescription = "I can give you access to the User's notes. Use the list_resources and read_resource endpoints to get the notes. " +
		"The list_resources endpoint will give you the root folder, and the read_resource endpoint will give you the contents of the notes. " +
		"The scheme is simple_resource"
)

// Servlet implements the five servlet operations over a note tree.
//
// A Servlet holds no mutable state and may be used from many goroutines.
type Servlet struct {
	root   *notes.Folder
	log    *slog.Logger
	schema mcp.Object
}

// Option configures a Servlet.
type Option func(*Servlet)

// WithRoot serves root instead of the reference tree.
func WithRoot(root *notes.Folder) Option {
	return func(s *Servlet) {
		if root != nil {
			s.root = root
		}
	}
}

// WithLogger sets the logger. It defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Servlet) {
		if l != nil {
			s.log = l
		}
	}
}

// New builds a Servlet.
func New(opts ...Option) *Servlet {
	s := &Servlet{
		root:   notes.Reference(),
		log:    slog.Default(),
		schema: callArgumentsSchema(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the tree being served.
func (s *Servlet) Root() *notes.Folder {
	return s.root
}

// Call answers a tool call with fixed instructions on how to browse the
// notes. The request is accepted as is; its arguments are not inspected.
func (s *Servlet) Call(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req != nil && req.Params != nil {
		ctx = logctx.WithTool(ctx, req.Params.Name)
	}
	s.log.DebugContext(ctx, "servlet.call")

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent(callText)},
	}, nil
}

// Describe returns the tool description.
func (s *Servlet) Describe(ctx context.Context) (*mcp.ToolDescription, error) {
	return &mcp.ToolDescription{
		Name:        ToolName,
		Description: toolDescription,
		InputSchema: cloneObject(s.schema),
	}, nil
}

// ListResourceTemplates returns the two advertised URI templates. They are
// descriptive only; Resolve never consults them.
func (s *Servlet) ListResourceTemplates(ctx context.Context) (*mcp.ListResourceTemplatesResult, error) {
	return &mcp.ListResourceTemplatesResult{
		ResourceTemplates: []mcp.ResourceTemplate{
			{
				Name:        "note template",
				Description: mcp.Ptr("A template for a note resource"),
				MIMEType:    mcp.Ptr(MIMETypeText),
				URITemplate: notes.Scheme + "://{path}/{id}",
			},
			{
				Name:        "folder template",
				Description: mcp.Ptr("A template for a folder resource. Returns a list of notes and folders"),
				MIMEType:    mcp.Ptr(MIMETypeJSON),
				URITemplate: notes.Scheme + "://{path}/{name}",
			},
		},
	}, nil
}

// ListResources returns the root folder as the single top-level resource.
// Everything below it is reached through ReadResource.
func (s *Servlet) ListResources(ctx context.Context) (*mcp.ListResourcesResult, error) {
	return &mcp.ListResourcesResult{
		Resources: []mcp.Resource{
			{
				URI:         notes.RootURI,
				Name:        s.root.Name(),
				Description: mcp.Ptr("The root folder"),
				MIMEType:    mcp.Ptr(MIMETypeJSON),
			},
		},
	}, nil
}

// ReadResource resolves params.uri and returns the entry as indented JSON.
//
// A request without a uri fails with ErrInvalidRequest. A uri that does not
// resolve, including the empty string, fails with a *ResourceNotFoundError.
func (s *Servlet) ReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if req == nil || req.Params == nil || req.Params.URI == nil {
		return nil, missingFieldError("params.uri")
	}
	uri := *req.Params.URI
	ctx = logctx.WithResource(ctx, uri)

	entry, ok := notes.Resolve(s.root, uri)
	if !ok {
		s.log.DebugContext(ctx, "servlet.read_resource.not_found")
		return nil, &ResourceNotFoundError{URI: uri}
	}

	body, err := notes.Pretty(entry)
	if err != nil {
		return nil, err
	}
	s.log.DebugContext(ctx, "servlet.read_resource.ok", slog.String("kind", entry.Kind().String()))

	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: mcp.Ptr(MIMETypeJSON),
				Text:     &body,
			},
		},
	}, nil
}
