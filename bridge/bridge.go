package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ggoodman/simple-resource/internal/jsonrpc"
	"github.com/ggoodman/simple-resource/internal/logctx"
	"github.com/ggoodman/simple-resource/mcp"
	"github.com/ggoodman/simple-resource/servlet"
)

// Handler answers MCP JSON-RPC messages by invoking servlet entry points.
// It keeps no per-connection state and is safe for concurrent use.
type Handler struct {
	servlet *servlet.Servlet
	log     *slog.Logger
	levels  *slog.LevelVar
	info    mcp.ImplementationInfo
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger. It defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithLevelVar lets logging/setLevel adjust lv. Without it the handler owns
// a private LevelVar, so setLevel is accepted but affects nothing else.
func WithLevelVar(lv *slog.LevelVar) Option {
	return func(h *Handler) {
		if lv != nil {
			h.levels = lv
		}
	}
}

// WithServerInfo overrides the implementation info sent from initialize.
func WithServerInfo(info mcp.ImplementationInfo) Option {
	return func(h *Handler) {
		h.info = info
	}
}

// New builds a Handler in front of s.
func New(s *servlet.Servlet, opts ...Option) *Handler {
	h := &Handler{
		servlet: s,
		log:     slog.Default(),
		levels:  new(slog.LevelVar),
		info:    mcp.ImplementationInfo{Name: servlet.ToolName, Version: "1.0.0"},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one JSON-RPC message and returns the encoded response.
// Notifications produce no response and Handle returns nil for them.
func (h *Handler) Handle(ctx context.Context, msg []byte) []byte {
	req, err := jsonrpc.ParseRequest(msg)
	if err != nil {
		var id *jsonrpc.RequestID
		if req != nil {
			id = req.ID
		}
		if errors.Is(err, jsonrpc.ErrParse) {
			return h.encode(ctx, jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeParseError, "parse error", nil))
		}
		return h.encode(ctx, jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInvalidRequest, err.Error(), nil))
	}

	ctx = logctx.WithRPCMessage(ctx, &logctx.RPCMessage{
		Method: req.Method,
		ID:     req.ID.String(),
		Type:   req.Type(),
	})

	if req.IsNotification() {
		h.log.DebugContext(ctx, "bridge.notification")
		return nil
	}

	result, err := h.dispatch(ctx, mcp.Method(req.Method), req.Params)
	if err != nil {
		return h.encode(ctx, h.errorResponse(ctx, req.ID, err))
	}

	resp, err := jsonrpc.NewResultResponse(req.ID, result)
	if err != nil {
		return h.encode(ctx, h.errorResponse(ctx, req.ID, err))
	}
	return h.encode(ctx, resp)
}

func (h *Handler) dispatch(ctx context.Context, method mcp.Method, params json.RawMessage) (any, error) {
	switch method {
	case mcp.InitializeMethod:
		return h.handleInitialize(ctx, params)
	case mcp.PingMethod:
		return mcp.EmptyResult{}, nil
	case mcp.ToolsListMethod:
		return h.handleToolsList(ctx)
	case mcp.ToolsCallMethod:
		return h.handleToolsCall(ctx, params)
	case mcp.ResourcesListMethod:
		return h.invoke(ctx, servlet.EntryPointListResources, method, params)
	case mcp.ResourcesTemplatesListMethod:
		return h.invoke(ctx, servlet.EntryPointListResourceTemplates, method, params)
	case mcp.ResourcesReadMethod:
		return h.invoke(ctx, servlet.EntryPointReadResource, method, params)
	case mcp.LoggingSetLevelMethod:
		return h.handleSetLevel(ctx, params)
	default:
		return nil, &methodNotFoundError{method: string(method)}
	}
}

func (h *Handler) handleInitialize(ctx context.Context, params json.RawMessage) (any, error) {
	var req mcp.InitializeRequest
	if err := unmarshalParams(params, &req); err != nil {
		return nil, err
	}

	version := mcp.LatestProtocolVersion
	if slices.Contains(mcp.SupportedProtocolVersions, req.ProtocolVersion) {
		version = req.ProtocolVersion
	}

	desc, err := h.servlet.Describe(ctx)
	if err != nil {
		return nil, err
	}

	h.log.InfoContext(ctx, "bridge.initialize",
		slog.String("client", req.ClientInfo.Name),
		slog.String("client_version", req.ClientInfo.Version),
		slog.String("requested_protocol", req.ProtocolVersion),
		slog.String("protocol", version),
	)

	return &mcp.InitializeResult{
		ProtocolVersion: version,
		Capabilities: mcp.ServerCapabilities{
			Logging:   &struct{}{},
			Resources: &mcp.ResourcesCapability{},
			Tools:     &mcp.ToolsCapability{},
		},
		ServerInfo:   h.info,
		Instructions: desc.Description,
	}, nil
}

func (h *Handler) handleToolsList(ctx context.Context) (any, error) {
	raw, err := h.invokeRaw(ctx, servlet.EntryPointDescribe, nil)
	if err != nil {
		return nil, err
	}
	var desc mcp.ToolDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("decode describe output: %w", err)
	}
	return &mcp.ListToolsResult{Tools: []*mcp.ToolDescription{&desc}}, nil
}

func (h *Handler) handleToolsCall(ctx context.Context, params json.RawMessage) (any, error) {
	call, err := mcp.Decode(orNull(params), mcp.CallToolParamsFromObject)
	if err != nil {
		return nil, invalidParamsError(err)
	}
	if call == nil || call.Name != servlet.ToolName {
		name := ""
		if call != nil {
			name = call.Name
		}
		return nil, invalidParamsError(fmt.Errorf("unknown tool: %q", name))
	}
	return h.invoke(ctx, servlet.EntryPointCall, mcp.ToolsCallMethod, params)
}

// invoke runs ep with the servlet request document {"method", "params"} and
// returns the servlet output verbatim.
func (h *Handler) invoke(ctx context.Context, ep servlet.EntryPoint, method mcp.Method, params json.RawMessage) (any, error) {
	var in []byte
	if ep.ReadsInput() {
		doc := struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params,omitempty"`
		}{Method: string(method), Params: params}
		var err error
		if in, err = json.Marshal(doc); err != nil {
			return nil, invalidParamsError(err)
		}
	}
	raw, err := h.invokeRaw(ctx, ep, in)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (h *Handler) invokeRaw(ctx context.Context, ep servlet.EntryPoint, in []byte) (json.RawMessage, error) {
	host := &servlet.BufferHost{In: in}
	if err := h.servlet.Invoke(ctx, ep, host); err != nil {
		return nil, err
	}
	return json.RawMessage(host.Out.Bytes()), nil
}

func (h *Handler) encode(ctx context.Context, resp *jsonrpc.Response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		h.log.ErrorContext(ctx, "bridge.encode.err", slog.String("err", err.Error()))
		b, _ = json.Marshal(jsonrpc.NewErrorResponse(resp.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil))
	}
	return b
}

func unmarshalParams(params json.RawMessage, dst any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return invalidParamsError(err)
	}
	return nil
}

func orNull(params json.RawMessage) []byte {
	if len(params) == 0 {
		return []byte("null")
	}
	return params
}
