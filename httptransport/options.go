package httptransport

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ggoodman/simple-resource/auth"
	"github.com/ggoodman/simple-resource/internal/wellknown"
)

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address used by Run. Defaults to DefaultAddr.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithLogger sets the logger used by the server. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAuthenticator requires every request to carry a bearer token accepted
// by a. Without it the endpoint is unauthenticated.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(s *Server) { s.auth = a }
}

// WithRealm sets the realm advertised in WWW-Authenticate challenges.
func WithRealm(realm string) Option {
	return func(s *Server) {
		if r := strings.TrimSpace(realm); r != "" {
			s.realm = r
		}
	}
}

// WithProtectedResource advertises OAuth 2.0 Protected Resource Metadata for
// resource, the public URL of the MCP endpoint, naming the authorization
// servers that issue its tokens. Challenges then point clients at the
// metadata document.
func WithProtectedResource(resource string, authorizationServers ...string) Option {
	return func(s *Server) {
		s.prm = &wellknown.ProtectedResourceMetadata{
			Resource:               resource,
			AuthorizationServers:   append([]string(nil), authorizationServers...),
			BearerMethodsSupported: []string{"header"},
		}
	}
}

// WithMaxBodySize caps the size of a request body in bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests after
// its context is canceled.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}
