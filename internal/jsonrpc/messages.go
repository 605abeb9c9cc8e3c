package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ProtocolVersion is the supported JSON-RPC protocol version.
const ProtocolVersion = "2.0"

var (
	// ErrParse is returned by ParseRequest when the payload is not valid JSON.
	ErrParse = errors.New("jsonrpc: parse error")
	// ErrInvalidRequest is returned by ParseRequest when the payload is JSON
	// but not a well formed request object.
	ErrInvalidRequest = errors.New("jsonrpc: invalid request")
)

// Request represents a JSON-RPC request (with an ID) or notification (without ID).
type Request struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Method         string          `json:"method"`
	Params         json.RawMessage `json:"params,omitempty"`
	ID             *RequestID      `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no ID and therefore
// must not be answered.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// Type returns "notification" or "request".
func (r *Request) Type() string {
	if r.IsNotification() {
		return "notification"
	}
	return "request"
}

// Response represents a JSON-RPC response. ID is always emitted; it is null
// when the request could not be identified.
type Response struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
	ID             *RequestID      `json:"id"`
}

// ParseRequest decodes a single JSON-RPC request. The returned error wraps
// ErrParse or ErrInvalidRequest so callers can pick the matching error code.
// When the payload was at least an object with an id, the id is returned
// alongside the error so the error response can echo it.
func ParseRequest(data []byte) (*Request, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, ErrParse
	}
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidRequest)
	}

	var raw struct {
		JSONRPCVersion string          `json:"jsonrpc"`
		Method         *string         `json:"method"`
		Params         json.RawMessage `json:"params,omitempty"`
		ID             *RequestID      `json:"id,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	req := &Request{
		JSONRPCVersion: raw.JSONRPCVersion,
		Params:         raw.Params,
		ID:             raw.ID,
	}
	if raw.JSONRPCVersion != ProtocolVersion {
		return req, fmt.Errorf("%w: invalid JSON-RPC version: expected %q, got %q", ErrInvalidRequest, ProtocolVersion, raw.JSONRPCVersion)
	}
	if raw.Method == nil || *raw.Method == "" {
		return req, fmt.Errorf("%w: missing method", ErrInvalidRequest)
	}
	req.Method = *raw.Method
	return req, nil
}

// NewResultResponse builds a successful JSON-RPC response object.
func NewResultResponse(id *RequestID, result any) (*Response, error) {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Result:         resultBytes,
		ID:             id,
	}, nil
}

// NewErrorResponse builds an error JSON-RPC response with the given code.
func NewErrorResponse(id *RequestID, code ErrorCode, message string, data any) *Response {
	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Error:          NewError(code, message, data),
		ID:             id,
	}
}
