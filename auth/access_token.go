package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ggoodman/simple-resource/internal/jwtauth"
)

// Option configures optional aspects of token validation.
type Option func(*jwtauth.Config)

// WithExpectedAudience adds accepted "aud" values. A token must carry at
// least one of them. Without this option the audience is not checked.
func WithExpectedAudience(aud ...string) Option {
	return func(c *jwtauth.Config) {
		c.ExpectedAudiences = append(c.ExpectedAudiences, aud...)
	}
}

// WithLeeway sets clock skew tolerance for time-based claims.
func WithLeeway(d time.Duration) Option {
	return func(c *jwtauth.Config) { c.Leeway = d }
}

// WithAllowedAlgs restricts allowed JWS algorithms for discovery based
// validation. Defaults to RS256.
func WithAllowedAlgs(algs ...string) Option {
	return func(c *jwtauth.Config) {
		c.AllowedAlgs = append([]string(nil), algs...)
	}
}

// NewFromDiscovery returns an Authenticator that verifies JWT access tokens
// using the issuer's OpenID Connect discovery document to locate its JWKS.
func NewFromDiscovery(ctx context.Context, issuer string, opts ...Option) (Authenticator, error) {
	cfg := jwtauth.DefaultConfig()
	cfg.Issuer = issuer
	for _, opt := range opts {
		opt(cfg)
	}
	a, err := jwtauth.NewFromDiscovery(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &adapter{a: a}, nil
}

// NewHS256 returns an Authenticator that verifies HS256 tokens signed with
// the shared secret and issued by issuer.
func NewHS256(secret []byte, issuer string, opts ...Option) (Authenticator, error) {
	cfg := jwtauth.DefaultConfig()
	cfg.Issuer = issuer
	for _, opt := range opts {
		opt(cfg)
	}
	a, err := jwtauth.NewHS256(cfg, secret)
	if err != nil {
		return nil, err
	}
	return &adapter{a: a}, nil
}

// adapter wraps the internal authenticator to satisfy the public interface.
type adapter struct {
	a *jwtauth.Authenticator
}

func (ad *adapter) CheckAuthentication(ctx context.Context, tok string) (UserInfo, error) {
	ui, err := ad.a.CheckAuthentication(ctx, tok)
	if err != nil {
		if errors.Is(err, jwtauth.ErrUnauthorized) {
			return nil, errors.Join(ErrUnauthorized, err)
		}
		return nil, err
	}
	return userInfoAdapter{ui: ui}, nil
}

type userInfoAdapter struct{ ui jwtauth.UserInfo }

func (u userInfoAdapter) UserID() string       { return u.ui.UserID() }
func (u userInfoAdapter) Claims(ref any) error { return u.ui.Claims(ref) }
