package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elnormous/contenttype"
	"github.com/google/uuid"

	"github.com/ggoodman/simple-resource/auth"
	"github.com/ggoodman/simple-resource/internal/logctx"
	"github.com/ggoodman/simple-resource/internal/wellknown"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = "127.0.0.1:8080"
	// Path is the single endpoint served.
	Path = "/mcp"
	// DefaultMaxBodySize is the default request body limit.
	DefaultMaxBodySize = 1024 * 1024

	defaultRealm           = "mcp"
	defaultShutdownTimeout = 10 * time.Second
	authorizationHeader    = "Authorization"
	bearerPrefix           = "Bearer "
)

var (
	jsonMediaType  = contenttype.NewMediaType("application/json")
	jsonMediaTypes = []contenttype.MediaType{jsonMediaType}
)

// MessageHandler answers one JSON-RPC message. A nil return means the
// message was a notification.
type MessageHandler interface {
	Handle(ctx context.Context, msg []byte) []byte
}

// Server is an http.Handler exposing a MessageHandler at /mcp.
type Server struct {
	mh              MessageHandler
	mux             *http.ServeMux
	addr            string
	log             *slog.Logger
	auth            auth.Authenticator
	realm           string
	maxBody         int64
	shutdownTimeout time.Duration
	prm             *wellknown.ProtectedResourceMetadata
	prmURL          string
}

var _ http.Handler = (*Server)(nil)

// New constructs a Server for mh.
func New(mh MessageHandler, opts ...Option) *Server {
	s := &Server{
		mh:              mh,
		addr:            DefaultAddr,
		log:             slog.Default(),
		realm:           defaultRealm,
		maxBody:         DefaultMaxBodySize,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc(Path, s.handleMCP)
	if s.prm != nil {
		u, err := wellknown.MetadataURL(s.prm.Resource)
		if err != nil {
			s.log.Error("http.prm.invalid", slog.String("resource", s.prm.Resource), slog.String("err", err.Error()))
			s.prm = nil
		} else {
			s.prmURL = u.String()
			s.mux.HandleFunc("GET "+u.Path, s.handleGetProtectedResourceMetadata)
			s.mux.HandleFunc("OPTIONS "+u.Path, s.handleOptionsProtectedResourceMetadata)
		}
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run listens on the configured address and serves until ctx is canceled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("httptransport: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "http.serve.start", slog.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httptransport: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.ErrorContext(ctx, "http.shutdown.err", slog.String("err", err.Error()))
		return fmt.Errorf("httptransport: shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httptransport: serve: %w", err)
	}
	s.log.InfoContext(ctx, "http.serve.stopped")
	return nil
}

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := logctx.WithRequestData(r.Context(), &logctx.RequestData{
		RequestID:  uuid.NewString(),
		Method:     r.Method,
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
		Path:       r.URL.Path,
	})

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		s.log.InfoContext(ctx, "http.method.unsupported")
		return
	}

	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		writeJSONError(w, http.StatusUnsupportedMediaType, "content-type must be application/json")
		s.log.WarnContext(ctx, "http.content_type.unsupported")
		return
	}
	if _, _, err := contenttype.GetAcceptableMediaType(r, jsonMediaTypes); err != nil {
		writeJSONError(w, http.StatusNotAcceptable, "client must accept application/json")
		s.log.WarnContext(ctx, "http.accept.unsupported")
		return
	}

	if s.auth != nil {
		ui := s.checkAuthentication(ctx, w, r)
		if ui == nil {
			return
		}
		ctx = logctx.WithUser(ctx, ui.UserID())
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		}
		s.log.WarnContext(ctx, "http.body.read.fail", slog.String("err", err.Error()))
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		writeJSONError(w, http.StatusBadRequest, "empty request body")
		s.log.WarnContext(ctx, "http.body.empty")
		return
	}

	resp := s.mh.Handle(ctx, body)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		s.log.DebugContext(ctx, "http.post.accepted", slog.Duration("dur", time.Since(start)))
		return
	}

	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp); err != nil {
		s.log.ErrorContext(ctx, "http.write.fail", slog.String("err", err.Error()))
		return
	}
	s.log.DebugContext(ctx, "http.post.ok", slog.Duration("dur", time.Since(start)))
}

// checkAuthentication returns the authenticated user or writes a challenge
// and returns nil.
func (s *Server) checkAuthentication(ctx context.Context, w http.ResponseWriter, r *http.Request) auth.UserInfo {
	header := r.Header.Get(authorizationHeader)
	if header == "" {
		s.log.InfoContext(ctx, "auth.check.missing")
		s.challenge(auth.NewAuthenticationRequired(s.realm)).Write(w)
		return nil
	}

	if !strings.HasPrefix(header, bearerPrefix) || strings.TrimSpace(header[len(bearerPrefix):]) == "" {
		s.log.InfoContext(ctx, "auth.check.invalid", slog.String("err", "malformed bearer authorization header"))
		s.challenge(auth.NewInvalidAuthorizationHeader(s.realm)).Write(w)
		return nil
	}
	tok := strings.TrimSpace(header[len(bearerPrefix):])

	ui, err := s.auth.CheckAuthentication(ctx, tok)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			s.log.InfoContext(ctx, "auth.check.fail", slog.String("err", err.Error()))
			s.challenge(auth.NewInvalidToken(s.realm, "the access token is invalid")).Write(w)
			return nil
		}
		s.log.ErrorContext(ctx, "auth.check.err", slog.String("err", err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "authentication failed")
		return nil
	}
	return ui
}

func (s *Server) challenge(c *auth.Challenge) *auth.Challenge {
	if s.prmURL == "" {
		return c
	}
	return c.WithResourceMetadata(s.prmURL)
}

// handleGetProtectedResourceMetadata serves the OAuth 2.0 Protected Resource
// Metadata document.
func (s *Server) handleGetProtectedResourceMetadata(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", jsonMediaType.String())
	if err := json.NewEncoder(w).Encode(s.prm); err != nil {
		s.log.ErrorContext(r.Context(), "http.prm.write.fail", slog.String("err", err.Error()))
	}
}

func (s *Server) handleOptionsProtectedResourceMetadata(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")
	w.Header().Set("Access-Control-Max-Age", "600")
	w.WriteHeader(http.StatusNoContent)
}

// writeJSONError emits a transport-level error body. It is not a JSON-RPC
// response: {"error":{"code":<httpStatus>,"message":"<reason>"}}
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", jsonMediaType.String())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": status, "message": msg}})
}
