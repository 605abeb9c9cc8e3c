// Package wellknown holds the OAuth 2.0 Protected Resource Metadata
// (RFC 9728) document advertised by the HTTP transport.
package wellknown

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ProtectedResourcePath is the well-known prefix of the metadata document.
const ProtectedResourcePath = "/.well-known/oauth-protected-resource"

type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers,omitempty"`
	ScopesSupported        []string `json:"scopes_supported,omitempty"`
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`
	ResourceName           string   `json:"resource_name,omitempty"`
}

// MetadataURL returns where the metadata document for resource is served:
// the well-known prefix inserted between the host and the resource path.
func MetadataURL(resource string) (*url.URL, error) {
	u, err := url.Parse(resource)
	if err != nil {
		return nil, fmt.Errorf("invalid resource url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("resource url must be absolute")
	}
	return &url.URL{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   ProtectedResourcePath + strings.TrimSuffix(u.Path, "/"),
	}, nil
}
