//go:build wasip1

// Command simple-resource builds the notes servlet as an Extism plugin:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o simple-resource.wasm ./cmd/simple-resource
//
// Each export runs one servlet entry point against the plugin host's input
// and output buffers.
package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"github.com/extism/go-pdk"

	"github.com/ggoodman/simple-resource/internal/logctx"
	"github.com/ggoodman/simple-resource/servlet"
)

var plugin = servlet.New(servlet.WithLogger(slog.New(logctx.New(newLogHandler()))))

//go:wasmexport call
func call() int32 { return invoke(servlet.EntryPointCall) }

//go:wasmexport describe
func describe() int32 { return invoke(servlet.EntryPointDescribe) }

//go:wasmexport list_resource_templates
func listResourceTemplates() int32 { return invoke(servlet.EntryPointListResourceTemplates) }

//go:wasmexport list_resources
func listResources() int32 { return invoke(servlet.EntryPointListResources) }

//go:wasmexport read_resource
func readResource() int32 { return invoke(servlet.EntryPointReadResource) }

func invoke(ep servlet.EntryPoint) int32 {
	if err := plugin.Invoke(context.Background(), ep, pdkHost{}); err != nil {
		pdk.SetError(err)
		return 1
	}
	return 0
}

// pdkHost reads and writes the Extism host buffers.
type pdkHost struct{}

func (pdkHost) Input() ([]byte, error) { return pdk.Input(), nil }

func (pdkHost) Output(data []byte) error {
	pdk.Output(data)
	return nil
}

// logHandler renders records as text and forwards them to the host log.
// Plugins are single threaded so the shared buffer needs no lock.
type logHandler struct {
	inner slog.Handler
	buf   *bytes.Buffer
}

func newLogHandler() *logHandler {
	buf := new(bytes.Buffer)
	inner := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		},
	})
	return &logHandler{inner: inner, buf: buf}
}

func (h *logHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.inner.Enabled(ctx, l)
}

func (h *logHandler) Handle(ctx context.Context, r slog.Record) error {
	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	pdk.Log(pdkLevel(r.Level), strings.TrimSuffix(h.buf.String(), "\n"))
	return nil
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logHandler{inner: h.inner.WithAttrs(attrs), buf: h.buf}
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{inner: h.inner.WithGroup(name), buf: h.buf}
}

func pdkLevel(l slog.Level) pdk.LogLevel {
	switch {
	case l >= slog.LevelError:
		return pdk.LogError
	case l >= slog.LevelWarn:
		return pdk.LogWarn
	case l >= slog.LevelInfo:
		return pdk.LogInfo
	default:
		return pdk.LogDebug
	}
}

func main() {}
