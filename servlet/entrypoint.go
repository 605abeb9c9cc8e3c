package servlet

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ggoodman/simple-resource/internal/logctx"
	"github.com/ggoodman/simple-resource/mcp"
)

// EntryPoint names one of the functions a host may invoke.
type EntryPoint string

const (
	EntryPointCall                  EntryPoint = "call"
	EntryPointDescribe              EntryPoint = "describe"
	EntryPointListResourceTemplates EntryPoint = "list_resource_templates"
	EntryPointListResources         EntryPoint = "list_resources"
	EntryPointReadResource          EntryPoint = "read_resource"
)

// EntryPoints lists every entry point in a stable order.
func EntryPoints() []EntryPoint {
	return []EntryPoint{
		EntryPointCall,
		EntryPointDescribe,
		EntryPointListResourceTemplates,
		EntryPointListResources,
		EntryPointReadResource,
	}
}

// ParseEntryPoint validates name.
func ParseEntryPoint(name string) (EntryPoint, error) {
	for _, ep := range EntryPoints() {
		if string(ep) == name {
			return ep, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntryPoint, name)
}

// ReadsInput reports whether the entry point consumes host input.
func (ep EntryPoint) ReadsInput() bool {
	return ep == EntryPointCall || ep == EntryPointReadResource
}

// Host is the channel between the servlet and whatever runtime loaded it.
// Input returns the raw request document; Output receives the serialized
// result. Output is called at most once per invocation and only on success.
type Host interface {
	Input() ([]byte, error)
	Output(data []byte) error
}

// Invoke runs one entry point against h: it reads and decodes the input
// when the entry point takes one, runs the operation, and writes the
// compact JSON result.
func (s *Servlet) Invoke(ctx context.Context, ep EntryPoint, h Host) error {
	ctx = logctx.WithInvocation(ctx, &logctx.InvocationData{
		ID:         uuid.NewString(),
		EntryPoint: string(ep),
	})
	start := time.Now()

	out, err := s.dispatch(ctx, ep, h)
	if err == nil {
		err = h.Output(out)
	}
	if err != nil {
		s.log.DebugContext(ctx, "servlet.invoke.err", slog.String("err", err.Error()), slog.Duration("dur", time.Since(start)))
		return err
	}
	s.log.DebugContext(ctx, "servlet.invoke.ok", slog.Int("bytes", len(out)), slog.Duration("dur", time.Since(start)))
	return nil
}

func (s *Servlet) dispatch(ctx context.Context, ep EntryPoint, h Host) ([]byte, error) {
	switch ep {
	case EntryPointCall:
		req, err := decodeInput(h, mcp.CallToolRequestFromObject)
		if err != nil {
			return nil, err
		}
		return encode(s.Call(ctx, req))

	case EntryPointDescribe:
		return encode(s.Describe(ctx))

	case EntryPointListResourceTemplates:
		return encode(s.ListResourceTemplates(ctx))

	case EntryPointListResources:
		return encode(s.ListResources(ctx))

	case EntryPointReadResource:
		req, err := decodeInput(h, mcp.ReadResourceRequestFromObject)
		if err != nil {
			return nil, err
		}
		return encode(s.ReadResource(ctx, req))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryPoint, string(ep))
	}
}

func decodeInput[T any](h Host, from func(mcp.Object) (*T, error)) (*T, error) {
	data, err := h.Input()
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	rec, err := mcp.Decode(data, from)
	if err != nil {
		return nil, malformedInputError(err)
	}
	return rec, nil
}

func encode[T mcp.ObjectEncoder](v T, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return mcp.Encode(v)
}

// BufferHost is an in-memory Host.
type BufferHost struct {
	In  []byte
	Out bytes.Buffer
}

func (h *BufferHost) Input() ([]byte, error) {
	return h.In, nil
}

func (h *BufferHost) Output(data []byte) error {
	h.Out.Reset()
	_, err := h.Out.Write(data)
	return err
}
