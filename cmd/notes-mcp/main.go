// Command notes-mcp serves the notes servlet as an MCP server over stdio or
// HTTP, or runs a single servlet entry point with "notes-mcp invoke <name>".
//
// Configuration is read from NOTES_* environment variables; see
// internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ggoodman/simple-resource/auth"
	"github.com/ggoodman/simple-resource/bridge"
	"github.com/ggoodman/simple-resource/httptransport"
	"github.com/ggoodman/simple-resource/internal/config"
	"github.com/ggoodman/simple-resource/internal/logctx"
	"github.com/ggoodman/simple-resource/mcp"
	"github.com/ggoodman/simple-resource/notes"
	"github.com/ggoodman/simple-resource/servlet"
	"github.com/ggoodman/simple-resource/stdio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "notes-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	levels := new(slog.LevelVar)
	lvl, err := bridge.SlogLevel(mcp.LoggingLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	levels.Set(lvl)
	log := newLogger(cfg.LogFormat, stderr, levels)

	root, err := loadRoot(cfg.Catalog)
	if err != nil {
		return err
	}
	s := servlet.New(servlet.WithRoot(root), servlet.WithLogger(log))

	if len(args) > 0 {
		if args[0] != "invoke" || len(args) != 2 {
			return fmt.Errorf("usage: notes-mcp [invoke <%s>]", joinEntryPoints())
		}
		ep, err := servlet.ParseEntryPoint(args[1])
		if err != nil {
			return err
		}
		return s.Invoke(ctx, ep, &streamHost{in: stdin, out: stdout})
	}

	h := bridge.New(s, bridge.WithLogger(log), bridge.WithLevelVar(levels))

	switch cfg.Transport {
	case config.TransportHTTP:
		opts := []httptransport.Option{
			httptransport.WithAddr(cfg.HTTPAddr),
			httptransport.WithLogger(log),
			httptransport.WithRealm(cfg.Auth.Realm),
		}
		if cfg.Auth.Enabled() {
			authn, err := newAuthenticator(ctx, cfg.Auth)
			if err != nil {
				return fmt.Errorf("auth: %w", err)
			}
			opts = append(opts, httptransport.WithAuthenticator(authn))
			if cfg.Auth.Issuer != "" && cfg.Auth.Resource != "" {
				opts = append(opts, httptransport.WithProtectedResource(cfg.Auth.Resource, cfg.Auth.Issuer))
			}
		}
		return httptransport.New(h, opts...).Run(ctx)
	default:
		return stdio.NewHandler(h, stdio.WithIO(stdin, stdout), stdio.WithLogger(log)).Serve(ctx)
	}
}

func newLogger(format string, w io.Writer, levels *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels}
	var h slog.Handler
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(logctx.New(h))
}

func loadRoot(path string) (*notes.Folder, error) {
	if path == "" {
		return notes.Reference(), nil
	}
	return notes.LoadCatalogFile(path)
}

func newAuthenticator(ctx context.Context, cfg config.Auth) (auth.Authenticator, error) {
	var opts []auth.Option
	if cfg.Audience != "" {
		opts = append(opts, auth.WithExpectedAudience(cfg.Audience))
	}
	if cfg.Issuer != "" {
		return auth.NewFromDiscovery(ctx, cfg.Issuer, opts...)
	}
	return auth.NewHS256([]byte(cfg.HS256Secret), cfg.HS256Issuer, opts...)
}

func joinEntryPoints() string {
	var names []string
	for _, ep := range servlet.EntryPoints() {
		names = append(names, string(ep))
	}
	return strings.Join(names, "|")
}

// streamHost feeds one entry point invocation from a reader and writes its
// output to a writer.
type streamHost struct {
	in  io.Reader
	out io.Writer
}

func (h *streamHost) Input() ([]byte, error) {
	return io.ReadAll(h.in)
}

func (h *streamHost) Output(data []byte) error {
	if _, err := h.out.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(h.out, "\n")
	return err
}
