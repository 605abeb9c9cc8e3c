// Package config loads the notes-mcp process configuration from the
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/joeshaw/envdecode"

	"github.com/ggoodman/simple-resource/mcp"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is decoded from NOTES_* environment variables.
type Config struct {
	// Transport selects how MCP messages arrive. ENV: NOTES_TRANSPORT
	Transport string `env:"NOTES_TRANSPORT,default=stdio"`
	// HTTPAddr is the listen address for the http transport. ENV: NOTES_HTTP_ADDR
	HTTPAddr string `env:"NOTES_HTTP_ADDR,default=127.0.0.1:8080"`
	// LogLevel is an MCP logging level name. ENV: NOTES_LOG_LEVEL
	LogLevel string `env:"NOTES_LOG_LEVEL,default=info"`
	// LogFormat is text or json. ENV: NOTES_LOG_FORMAT
	LogFormat string `env:"NOTES_LOG_FORMAT,default=text"`
	// Catalog is a YAML catalog file. Empty serves the built-in tree. ENV: NOTES_CATALOG
	Catalog string `env:"NOTES_CATALOG"`

	Auth Auth
}

// Auth configures bearer authentication for the http transport.
type Auth struct {
	// Issuer enables OIDC discovery based validation. ENV: NOTES_AUTH_ISSUER
	Issuer string `env:"NOTES_AUTH_ISSUER"`
	// Audience is the expected "aud" claim. ENV: NOTES_AUTH_AUDIENCE
	Audience string `env:"NOTES_AUTH_AUDIENCE"`
	// HS256Secret enables shared-secret validation. ENV: NOTES_AUTH_HS256_SECRET
	HS256Secret string `env:"NOTES_AUTH_HS256_SECRET"`
	// HS256Issuer is the "iss" expected on shared-secret tokens. ENV: NOTES_AUTH_HS256_ISSUER
	HS256Issuer string `env:"NOTES_AUTH_HS256_ISSUER,default=notes-mcp"`
	// Resource is the public URL of the MCP endpoint. With Issuer set it is
	// advertised as protected resource metadata. ENV: NOTES_AUTH_RESOURCE
	Resource string `env:"NOTES_AUTH_RESOURCE"`
	// Realm is advertised in WWW-Authenticate challenges. ENV: NOTES_AUTH_REALM
	Realm string `env:"NOTES_AUTH_REALM,default=notes"`
}

// Enabled reports whether any authentication mode is configured.
func (a Auth) Enabled() bool {
	return a.Issuer != "" || a.HS256Secret != ""
}

// Load decodes the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown transports, formats and levels, and conflicting
// auth settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Transport))
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat))
	}
	if !mcp.IsValidLoggingLevel(mcp.LoggingLevel(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel))
	}
	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		errs = append(errs, fmt.Errorf("%w: http transport requires NOTES_HTTP_ADDR", ErrInvalidConfig))
	}
	if c.Auth.Issuer != "" && c.Auth.HS256Secret != "" {
		errs = append(errs, fmt.Errorf("%w: NOTES_AUTH_ISSUER and NOTES_AUTH_HS256_SECRET are mutually exclusive", ErrInvalidConfig))
	}
	if c.Auth.Resource != "" {
		if u, err := url.Parse(c.Auth.Resource); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: NOTES_AUTH_RESOURCE must be an absolute url", ErrInvalidConfig))
		}
	}
	if c.Auth.Enabled() && c.Transport != TransportHTTP {
		errs = append(errs, fmt.Errorf("%w: authentication requires the http transport", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
