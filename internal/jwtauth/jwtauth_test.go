package jwtauth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
)

const testAudience = "https://notes.example.com/mcp"

type mockOIDC struct {
	srv    *httptest.Server
	issuer string
}

func newMockOIDC(t *testing.T, keysJSON []byte, omitJWKS bool) *mockOIDC {
	t.Helper()
	m := &mockOIDC{}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		meta := map[string]any{
			"issuer":                   m.issuer,
			"authorization_endpoint":   m.issuer + "/oauth2/auth",
			"token_endpoint":           m.issuer + "/oauth2/token",
			"response_types_supported": []string{"code"},
		}
		if !omitJWKS {
			meta["jwks_uri"] = m.issuer + "/keys"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(meta)
	})
	mux.HandleFunc("/keys", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(keysJSON)
	})
	m.srv = httptest.NewServer(mux)
	m.issuer = m.srv.URL
	t.Cleanup(m.srv.Close)
	return m
}

func genRSA(t *testing.T) (*rsa.PrivateKey, string, []byte) {
	t.Helper()
	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}
	kid := "test-key"
	set := struct {
		Keys []jose.JSONWebKey `json:"keys"`
	}{Keys: []jose.JSONWebKey{{Key: &pk.PublicKey, KeyID: kid, Algorithm: "RS256", Use: "sig"}}}
	b, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal jwks: %v", err)
	}
	return pk, kid, b
}

func signRS256(t *testing.T, pk *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(pk)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func signHS256(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(issuer string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   issuer,
		"sub":   "user-123",
		"aud":   testAudience,
		"exp":   now.Add(time.Hour).Unix(),
		"iat":   now.Unix(),
		"scope": "notes:read",
	}
}

func testConfig(issuer string, audiences ...string) *Config {
	cfg := DefaultConfig()
	cfg.Issuer = issuer
	cfg.ExpectedAudiences = audiences
	cfg.Leeway = 0
	return cfg
}

func TestDiscovery(t *testing.T) {
	pk, kid, jwks := genRSA(t)
	op := newMockOIDC(t, jwks, false)

	a, err := NewFromDiscovery(t.Context(), testConfig(op.issuer, testAudience, "http://localhost:8080/mcp"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ui, err := a.CheckAuthentication(t.Context(), signRS256(t, pk, kid, validClaims(op.issuer)))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ui.UserID() != "user-123" {
		t.Fatalf("want sub user-123, got %s", ui.UserID())
	}
	var out struct {
		Scope string `json:"scope"`
	}
	if err := ui.Claims(&out); err != nil {
		t.Fatalf("claims: %v", err)
	}
	if out.Scope != "notes:read" {
		t.Fatalf("scope mismatch: %q", out.Scope)
	}

	tests := []struct {
		name   string
		mutate func(jwt.MapClaims)
		ok     bool
	}{
		{name: "audience array", mutate: func(c jwt.MapClaims) { c["aud"] = []string{"https://other", testAudience} }, ok: true},
		{name: "secondary audience", mutate: func(c jwt.MapClaims) { c["aud"] = "http://localhost:8080/mcp" }, ok: true},
		{name: "unknown audience", mutate: func(c jwt.MapClaims) { c["aud"] = "https://unknown" }},
		{name: "issuer mismatch", mutate: func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" }},
		{name: "expired", mutate: func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() }},
		{name: "no exp", mutate: func(c jwt.MapClaims) { delete(c, "exp") }},
		{name: "no sub", mutate: func(c jwt.MapClaims) { delete(c, "sub") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims(op.issuer)
			tt.mutate(claims)
			_, err := a.CheckAuthentication(t.Context(), signRS256(t, pk, kid, claims))
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("want ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestDiscoveryWrongKey(t *testing.T) {
	_, kid, jwks := genRSA(t)
	other, _, _ := genRSA(t)
	op := newMockOIDC(t, jwks, false)

	a, err := NewFromDiscovery(t.Context(), testConfig(op.issuer, testAudience))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := a.CheckAuthentication(t.Context(), signRS256(t, other, kid, validClaims(op.issuer))); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestDiscoveryMissingJWKS(t *testing.T) {
	_, _, jwks := genRSA(t)
	op := newMockOIDC(t, jwks, true)

	if _, err := NewFromDiscovery(t.Context(), testConfig(op.issuer, testAudience)); err == nil {
		t.Fatal("expected error due to missing jwks_uri")
	}
}

func TestHS256(t *testing.T) {
	secret := []byte("local-development-secret")
	const issuer = "notes-local"

	a, err := NewHS256(testConfig(issuer, testAudience), secret)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ui, err := a.CheckAuthentication(t.Context(), signHS256(t, secret, validClaims(issuer)))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ui.UserID() != "user-123" {
		t.Fatalf("want sub user-123, got %s", ui.UserID())
	}

	for name, tok := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"wrong secret": signHS256(t, []byte("other"), validClaims(issuer)),
		"wrong alg":    signRS256(t, mustRSA(t), "k", validClaims(issuer)),
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := a.CheckAuthentication(t.Context(), tok); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("want ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestHS256NoAudienceCheck(t *testing.T) {
	secret := []byte("s")
	a, err := NewHS256(testConfig("iss"), secret)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	claims := validClaims("iss")
	delete(claims, "aud")
	if _, err := a.CheckAuthentication(t.Context(), signHS256(t, secret, claims)); err != nil {
		t.Fatalf("check: %v", err)
	}
}

func TestConstructorValidation(t *testing.T) {
	if _, err := NewHS256(nil, []byte("s")); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := NewHS256(testConfig(""), []byte("s")); err == nil {
		t.Fatal("expected error for missing issuer")
	}
	if _, err := NewHS256(testConfig("iss"), nil); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := NewFromDiscovery(t.Context(), testConfig("")); err == nil {
		t.Fatal("expected error for missing issuer")
	}
}

func mustRSA(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	pk, _, _ := genRSA(t)
	return pk
}
