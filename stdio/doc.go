// Package stdio serves MCP over a pair of byte streams, by default stdin and
// stdout, for hosts that launch the server as a subprocess.
//
// Characteristics
//
//	Connection model : 1 process <-> 1 client
//	Framing          : newline-delimited JSON-RPC, one message per line
//	Auth             : none; the OS user labels log records
//
// Example:
//
//	h := stdio.NewHandler(bridge.New(servlet.New()))
//	if err := h.Serve(ctx); err != nil { log.Fatal(err) }
//
// Serve processes messages in arrival order and writes one line per
// response. Notifications produce no output. Serve returns nil when the
// reader reaches EOF and ctx.Err() when the context is canceled.
package stdio
