// Package bridge exposes the notes servlet as a Model Context Protocol
// server.
//
// Each MCP request is translated into one servlet entry point invocation
// through an in-memory host, so the servlet sees exactly the documents a
// plugin runtime would hand it:
//
//	tools/list               -> describe
//	tools/call               -> call
//	resources/list           -> list_resources
//	resources/templates/list -> list_resource_templates
//	resources/read           -> read_resource
//
// initialize, ping and logging/setLevel are answered by the bridge itself.
// Servlet failures map to JSON-RPC errors: an unresolvable URI becomes
// -32002 with the URI in the error data, malformed input becomes -32602.
//
// Handler is transport agnostic; see the stdio and httptransport packages.
package bridge
