package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ggoodman/simple-resource/auth"
	"github.com/ggoodman/simple-resource/auth/authtest"
	"github.com/ggoodman/simple-resource/bridge"
	"github.com/ggoodman/simple-resource/internal/testlog"
	"github.com/ggoodman/simple-resource/servlet"
)

const readRequest = `{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"simple_resource://root/Folder 1/note1"}}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	log := testlog.Logger(t)
	mh := bridge.New(servlet.New(servlet.WithLogger(log)), bridge.WithLogger(log))
	srv := httptest.NewServer(New(mh, append([]Option{WithLogger(log)}, opts...)...))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body string, headers map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPostRequest(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+Path, readRequest, map[string]string{"Accept": "application/json, text/event-stream"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q", ct)
	}
	var rpc struct {
		ID     int `json:"id"`
		Result struct {
			Contents []struct {
				URI  string `json:"uri"`
				Text string `json:"text"`
			} `json:"contents"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpc.ID != 1 || len(rpc.Result.Contents) != 1 || rpc.Result.Contents[0].URI != "simple_resource://root/Folder 1/note1" {
		t.Fatalf("unexpected response: %+v", rpc)
	}
}

func TestPostNotification(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+Path, `{"jsonrpc":"2.0","method":"notifications/initialized"}`, nil)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Fatalf("expected empty body, got %q", body)
	}
}

func TestRejections(t *testing.T) {
	srv := newTestServer(t, WithMaxBodySize(64))

	t.Run("method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + Path)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed || resp.Header.Get("Allow") != http.MethodPost {
			t.Fatalf("status = %d allow = %q", resp.StatusCode, resp.Header.Get("Allow"))
		}
	})

	tests := []struct {
		name    string
		body    string
		headers map[string]string
		want    int
	}{
		{name: "content type", body: `{}`, headers: map[string]string{"Content-Type": "text/plain"}, want: http.StatusUnsupportedMediaType},
		{name: "accept", body: `{}`, headers: map[string]string{"Accept": "text/event-stream"}, want: http.StatusNotAcceptable},
		{name: "empty body", body: ``, want: http.StatusBadRequest},
		{name: "too large", body: `{"jsonrpc":"2.0","id":1,"method":"ping","params":{"pad":"` + strings.Repeat("x", 128) + `"}}`, want: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+Path, tt.body, tt.headers)
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestJSONRPCErrorsAreOK(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+Path, `{"jsonrpc":"2.0","id":7,"method":"resources/read","params":{"uri":"simple_resource://root/missing"}}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var rpc struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rpc.Error.Code != -32002 {
		t.Fatalf("code = %d", rpc.Error.Code)
	}
}

func TestAuthentication(t *testing.T) {
	srv := newTestServer(t, WithAuthenticator(authtest.StaticTokens{"good": "alice"}), WithRealm("notes"))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantChal   string
	}{
		{name: "missing", wantStatus: http.StatusUnauthorized, wantChal: `Bearer realm="notes"`},
		{name: "wrong scheme", header: "Basic Zm9vOmJhcg==", wantStatus: http.StatusBadRequest, wantChal: `error="invalid_request"`},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusBadRequest, wantChal: `error="invalid_request"`},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantChal: `error="invalid_token"`},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			resp := post(t, srv.URL+Path, readRequest, headers)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := resp.Header.Get("WWW-Authenticate"); !strings.Contains(got, tt.wantChal) {
				t.Fatalf("challenge = %q, want it to contain %q", got, tt.wantChal)
			}
		})
	}
}

type failingAuth struct{}

func (failingAuth) CheckAuthentication(context.Context, string) (auth.UserInfo, error) {
	return nil, errors.New("backend down")
}

func TestAuthenticationBackendError(t *testing.T) {
	srv := newTestServer(t, WithAuthenticator(failingAuth{}))

	resp := post(t, srv.URL+Path, readRequest, map[string]string{"Authorization": "Bearer any"})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	log := testlog.Logger(t)
	s := New(bridge.New(servlet.New(servlet.WithLogger(log)), bridge.WithLogger(log)), WithLogger(log))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp := post(t, "http://"+ln.Addr().String()+Path, `{"jsonrpc":"2.0","id":1,"method":"ping"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestProtectedResourceMetadata(t *testing.T) {
	srv := newTestServer(t,
		WithAuthenticator(authtest.StaticTokens{"good": "alice"}),
		WithRealm("notes"),
		WithProtectedResource("https://notes.example.com/mcp", "https://issuer.example.com"),
	)

	resp, err := http.Get(srv.URL + "/.well-known/oauth-protected-resource/mcp")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var doc struct {
		Resource             string   `json:"resource"`
		AuthorizationServers []string `json:"authorization_servers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Resource != "https://notes.example.com/mcp" || len(doc.AuthorizationServers) != 1 || doc.AuthorizationServers[0] != "https://issuer.example.com" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	unauth := post(t, srv.URL+Path, readRequest, nil)
	want := `Bearer realm="notes", resource_metadata="https://notes.example.com/.well-known/oauth-protected-resource/mcp"`
	if got := unauth.Header.Get("WWW-Authenticate"); got != want {
		t.Fatalf("challenge = %s, want %s", got, want)
	}
}
