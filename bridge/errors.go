package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ggoodman/simple-resource/internal/jsonrpc"
	"github.com/ggoodman/simple-resource/servlet"
)

var errInvalidParams = errors.New("invalid params")

func invalidParamsError(err error) error {
	return fmt.Errorf("%w: %w", errInvalidParams, err)
}

type methodNotFoundError struct {
	method string
}

func (e *methodNotFoundError) Error() string {
	return "method not found: " + e.method
}

// errorResponse maps handler errors onto JSON-RPC error objects. Anything
// that is not a known client mistake becomes an opaque internal error and is
// logged.
func (h *Handler) errorResponse(ctx context.Context, id *jsonrpc.RequestID, err error) *jsonrpc.Response {
	var mnf *methodNotFoundError
	if errors.As(err, &mnf) {
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeMethodNotFound, mnf.Error(), nil)
	}

	var nf *servlet.ResourceNotFoundError
	if errors.As(err, &nf) {
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeResourceNotFound, nf.Error(), map[string]string{"uri": nf.URI})
	}

	if errors.Is(err, servlet.ErrInvalidRequest) || errors.Is(err, errInvalidParams) {
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInvalidParams, err.Error(), nil)
	}

	h.log.ErrorContext(ctx, "bridge.internal_error", slog.String("err", err.Error()))
	return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInternalError, "internal error", nil)
}
