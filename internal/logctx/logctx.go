package logctx

import (
	"context"
	"log/slog"
)

// Handler decorates every record with the request-scoped groups stored in
// the record's context.
type Handler struct {
	slog.Handler
}

// New wraps h.
func New(h slog.Handler) Handler {
	return Handler{Handler: h}
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		r.AddAttrs(slog.Group("req",
			slog.String("id", rd.RequestID),
			slog.String("method", rd.Method),
			slog.String("user_agent", rd.UserAgent),
			slog.String("remote_addr", rd.RemoteAddr),
			slog.String("path", rd.Path),
		))
	}

	if userID, ok := ctx.Value(userKey{}).(string); ok {
		r.AddAttrs(slog.Group("user", slog.String("id", userID)))
	}

	if msg, ok := ctx.Value(rpcMsg{}).(*RPCMessage); ok {
		r.AddAttrs(slog.Group("rpc",
			slog.String("method", msg.Method),
			slog.String("id", msg.ID),
			slog.String("type", msg.Type),
		))
	}

	if inv, ok := ctx.Value(invocationKey{}).(*InvocationData); ok {
		r.AddAttrs(slog.Group("inv",
			slog.String("id", inv.ID),
			slog.String("entry_point", inv.EntryPoint),
		))
	}

	if name, ok := ctx.Value(toolKey{}).(string); ok {
		r.AddAttrs(slog.Group("tool", slog.String("name", name)))
	}

	if uri, ok := ctx.Value(resourceKey{}).(string); ok {
		r.AddAttrs(slog.Group("res", slog.String("uri", uri)))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}

type rpcMsg struct{}

type RPCMessage struct {
	Method string
	ID     string
	Type   string
}

func WithRPCMessage(ctx context.Context, msg *RPCMessage) context.Context {
	return context.WithValue(ctx, rpcMsg{}, msg)
}

type requestDataKey struct{}

type RequestData struct {
	RequestID  string
	Method     string
	UserAgent  string
	RemoteAddr string
	Path       string
}

func WithRequestData(ctx context.Context, data *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, data)
}

type userKey struct{}

// WithUser records the authenticated principal.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

type invocationKey struct{}

// InvocationData identifies one run of a servlet entry point.
type InvocationData struct {
	ID         string
	EntryPoint string
}

func WithInvocation(ctx context.Context, data *InvocationData) context.Context {
	return context.WithValue(ctx, invocationKey{}, data)
}

type toolKey struct{}

func WithTool(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, toolKey{}, name)
}

type resourceKey struct{}

func WithResource(ctx context.Context, uri string) context.Context {
	return context.WithValue(ctx, resourceKey{}, uri)
}
