package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ggoodman/simple-resource/bridge"
	"github.com/ggoodman/simple-resource/internal/testlog"
	"github.com/ggoodman/simple-resource/servlet"
)

func newTestHandler(t *testing.T, r io.Reader, w io.Writer) *Handler {
	t.Helper()
	log := testlog.Logger(t)
	mh := bridge.New(servlet.New(servlet.WithLogger(log)), bridge.WithLogger(log))
	return NewHandler(mh,
		WithIO(r, w),
		WithLogger(log),
		WithUserProvider(StaticUserProvider("tester")),
	)
}

func TestServeFraming(t *testing.T) {
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		``,
		`   `,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"simple_resource://root/Folder 1/note1"}}`,
		`not json`,
	}, "\n")
	var out bytes.Buffer

	if err := newTestHandler(t, strings.NewReader(in), &out).Serve(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []string
	var codes []int
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var resp struct {
			ID    json.RawMessage `json:"id"`
			Error *struct {
				Code int `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(sc.Bytes(), &resp); err != nil {
			t.Fatalf("bad output line %q: %v", sc.Text(), err)
		}
		ids = append(ids, string(resp.ID))
		code := 0
		if resp.Error != nil {
			code = resp.Error.Code
		}
		codes = append(codes, code)
	}

	if got := strings.Join(ids, ","); got != "1,2,null" {
		t.Fatalf("response ids = %s, want 1,2,null", got)
	}
	if codes[0] != 0 || codes[1] != 0 || codes[2] != -32700 {
		t.Fatalf("unexpected error codes %v", codes)
	}
}

func TestServeMessageTooLarge(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping","params":{"pad":"` + strings.Repeat("x", 512) + `"}}` + "\n"
	var out bytes.Buffer
	h := newTestHandler(t, strings.NewReader(in), &out)
	WithMaxMessageSize(128)(h)

	err := h.Serve(t.Context())
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("expected bufio.ErrTooLong, got %v", err)
	}
	if got := strings.Count(out.String(), "\n"); got != 1 || !strings.Contains(out.String(), `"id":1`) {
		t.Fatalf("expected only the first ping to be answered, got %q", out.String())
	}
}

func TestServeCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- newTestHandler(t, pr, io.Discard).Serve(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestServeWriteError(t *testing.T) {
	h := newTestHandler(t, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), failingWriter{})
	if err := h.Serve(t.Context()); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("expected write error, got %v", err)
	}
}
