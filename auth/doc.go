// Package auth provides the bearer token authentication used by the HTTP
// transport.
//
// An Authenticator validates an incoming bearer token string and returns a
// UserInfo (or an error wrapping ErrUnauthorized). The transport extracts the
// token from the request and maps failures onto a Challenge.
//
// # Constructors
//
// NewFromDiscovery validates JWT access tokens using OpenID Connect discovery
// to obtain the issuer's JWKS. NewHS256 validates tokens signed with a shared
// secret and is meant for local setups.
//
//	authn, err := auth.NewFromDiscovery(ctx, "https://issuer.example",
//	    auth.WithExpectedAudience("https://notes.example/mcp"),
//	)
//	if err != nil { log.Fatal(err) }
//
//	ui, err := authn.CheckAuthentication(r.Context(), bearerToken)
//	if errors.Is(err, auth.ErrUnauthorized) { /* map to 401 challenge */ }
//
// Every token must carry exp, the configured issuer and a non-empty sub.
// WithLeeway adds tolerance for clock skew.
package auth
