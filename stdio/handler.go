package stdio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ggoodman/simple-resource/internal/logctx"
)

// DefaultMaxMessageSize is the longest line Serve accepts by default.
const DefaultMaxMessageSize = 1024 * 1024

// MessageHandler answers one JSON-RPC message. A nil return means there is
// nothing to write back.
type MessageHandler interface {
	Handle(ctx context.Context, msg []byte) []byte
}

// Handler is a single-connection stdio transport that reads JSON-RPC messages
// from an io.Reader and writes responses to an io.Writer. By default, it uses
// os.Stdin and os.Stdout.
type Handler struct {
	mh           MessageHandler
	r            io.Reader
	w            io.Writer
	l            *slog.Logger
	userProvider UserProvider
	maxMessage   int
}

// NewHandler constructs a stdio Handler with defaults and applies options.
func NewHandler(mh MessageHandler, opts ...Option) *Handler {
	h := &Handler{
		mh:           mh,
		r:            os.Stdin,
		w:            os.Stdout,
		l:            slog.Default(),
		userProvider: OSUserProvider{},
		maxMessage:   DefaultMaxMessageSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve runs the stdio event loop until EOF on the reader or the context is
// canceled. It is safe to call at most once per Handler.
func (h *Handler) Serve(ctx context.Context) error {
	if uid, err := h.userProvider.CurrentUserID(); err == nil && uid != "" {
		ctx = logctx.WithUser(ctx, uid)
	} else if err != nil {
		h.l.WarnContext(ctx, "stdio.user.err", slog.String("err", err.Error()))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go h.readLoop(ctx, lines, readErr)

	h.l.InfoContext(ctx, "stdio.serve.start")
	for {
		select {
		case <-ctx.Done():
			h.l.InfoContext(ctx, "stdio.serve.canceled")
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				err := <-readErr
				if err != nil {
					h.l.ErrorContext(ctx, "stdio.read.err", slog.String("err", err.Error()))
					return fmt.Errorf("stdio: read: %w", err)
				}
				h.l.InfoContext(ctx, "stdio.serve.eof")
				return nil
			}

			resp := h.mh.Handle(ctx, line)
			if resp == nil {
				continue
			}
			if err := h.writeLine(resp); err != nil {
				h.l.ErrorContext(ctx, "stdio.write.err", slog.String("err", err.Error()))
				return fmt.Errorf("stdio: write: %w", err)
			}
		}
	}
}

func (h *Handler) readLoop(ctx context.Context, lines chan<- []byte, readErr chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(h.r)
	scanner.Buffer(make([]byte, 0, min(64*1024, h.maxMessage)), h.maxMessage)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		msg := append([]byte(nil), line...)
		select {
		case lines <- msg:
		case <-ctx.Done():
			readErr <- nil
			return
		}
	}
	readErr <- scanner.Err()
}

func (h *Handler) writeLine(b []byte) error {
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, b...)
	buf = append(buf, '\n')
	_, err := h.w.Write(buf)
	return err
}
