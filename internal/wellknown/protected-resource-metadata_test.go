package wellknown

import "testing"

func TestMetadataURL(t *testing.T) {
	tests := []struct {
		resource string
		want     string
		wantErr  bool
	}{
		{resource: "https://notes.example.com/mcp", want: "https://notes.example.com/.well-known/oauth-protected-resource/mcp"},
		{resource: "http://127.0.0.1:8080/mcp/", want: "http://127.0.0.1:8080/.well-known/oauth-protected-resource/mcp"},
		{resource: "https://notes.example.com", want: "https://notes.example.com/.well-known/oauth-protected-resource"},
		{resource: "/mcp", wantErr: true},
		{resource: "://bad", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.resource, func(t *testing.T) {
			got, err := MetadataURL(tt.resource)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}
