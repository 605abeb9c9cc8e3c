package auth

import (
	"fmt"
	"net/http"
	"strings"
)

// Challenge describes an HTTP authentication failure: the status code and
// the parameters of the Bearer WWW-Authenticate challenge.
type Challenge struct {
	Status           int
	Realm            string
	ResourceMetadata string
	Error            string
	ErrorDescription string
}

// NewAuthenticationRequired builds a challenge indicating credentials are required.
// It carries no error code.
func NewAuthenticationRequired(realm string) *Challenge {
	return &Challenge{Status: http.StatusUnauthorized, Realm: realm}
}

// NewInvalidAuthorizationHeader builds a challenge for a malformed Authorization header.
func NewInvalidAuthorizationHeader(realm string) *Challenge {
	return &Challenge{
		Status:           http.StatusBadRequest,
		Realm:            realm,
		Error:            "invalid_request",
		ErrorDescription: "Invalid Authorization header",
	}
}

// NewInvalidToken builds a challenge indicating the token is invalid.
func NewInvalidToken(realm string, description string) *Challenge {
	return &Challenge{
		Status:           http.StatusUnauthorized,
		Realm:            realm,
		Error:            "invalid_token",
		ErrorDescription: description,
	}
}

// WithResourceMetadata returns a copy of c pointing clients at the protected
// resource metadata document.
func (c *Challenge) WithResourceMetadata(url string) *Challenge {
	cp := *c
	cp.ResourceMetadata = url
	return &cp
}

// Header renders the WWW-Authenticate value:
//
//	Bearer realm="<realm>", resource_metadata="<url>", error="...", error_description="..."
//
// Empty parameters are omitted.
func (c *Challenge) Header() string {
	var pieces []string
	add := func(k, v string) {
		if v != "" {
			pieces = append(pieces, fmt.Sprintf(`%s="%s"`, k, quote(v)))
		}
	}
	add("realm", c.Realm)
	add("resource_metadata", c.ResourceMetadata)
	add("error", c.Error)
	add("error_description", c.ErrorDescription)
	if len(pieces) == 0 {
		return "Bearer"
	}
	return "Bearer " + strings.Join(pieces, ", ")
}

// Write sets the WWW-Authenticate header and writes the status code.
func (c *Challenge) Write(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", c.Header())
	w.WriteHeader(c.Status)
}

// quote escapes a value for use inside an auth-param quoted-string.
func quote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
