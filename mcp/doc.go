// Package mcp contains the protocol records exchanged between a host and the
// notes servlet, plus the handful of handshake types and constants a Model
// Context Protocol front end needs.
//
// # Records
//
// Servlet records (CallToolRequest, ReadResourceResult, ToolDescription and
// friends) do not rely on struct tags. Each has a hand written pair of
// conversions against a generic Object, the map a host produces when it
// decodes JSON:
//
//	req, err := mcp.ReadResourceRequestFromObject(obj)
//	obj := res.ToObject()
//
// The conversions are null preserving. A nil Object converts to a nil
// record and back. Optional fields are pointers and are omitted when nil.
// Keys the record does not declare are kept in Extra and written back out,
// so a document passes through unchanged. A declared field of the wrong JSON
// type yields a *FieldError wrapping ErrMalformed.
//
// MarshalJSON and UnmarshalJSON go through the same conversions, which lets
// the records be used with encoding/json directly. Decode and Encode wrap the
// common byte level case.
//
// # Method Names
//
// JSON-RPC method and notification names are enumerated as Method constants
// (e.g. ToolsListMethod). Using the constants avoids typographical mistakes.
//
// # Logging Levels
//
// LoggingLevel values mirror syslog severities defined by the protocol. Use
// IsValidLoggingLevel to validate user-provided values.
package mcp
