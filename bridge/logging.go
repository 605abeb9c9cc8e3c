package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ggoodman/simple-resource/mcp"
)

// ErrInvalidLoggingLevel indicates the provided level is not one of the
// protocol-defined LoggingLevel values.
var ErrInvalidLoggingLevel = errors.New("invalid logging level")

// SlogLevel maps an MCP logging level onto the closest slog level. Notice
// folds into info and everything above error folds into error.
func SlogLevel(level mcp.LoggingLevel) (slog.Level, error) {
	switch level {
	case mcp.LoggingLevelDebug:
		return slog.LevelDebug, nil
	case mcp.LoggingLevelInfo, mcp.LoggingLevelNotice:
		return slog.LevelInfo, nil
	case mcp.LoggingLevelWarning:
		return slog.LevelWarn, nil
	case mcp.LoggingLevelError, mcp.LoggingLevelCritical, mcp.LoggingLevelAlert, mcp.LoggingLevelEmergency:
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLoggingLevel, level)
	}
}

func (h *Handler) handleSetLevel(ctx context.Context, params json.RawMessage) (any, error) {
	var req mcp.SetLevelRequest
	if err := unmarshalParams(params, &req); err != nil {
		return nil, err
	}
	if !mcp.IsValidLoggingLevel(req.Level) {
		return nil, invalidParamsError(fmt.Errorf("%w: %q", ErrInvalidLoggingLevel, req.Level))
	}
	lvl, err := SlogLevel(req.Level)
	if err != nil {
		return nil, invalidParamsError(err)
	}

	h.levels.Set(lvl)
	h.log.InfoContext(ctx, "bridge.set_level", slog.String("level", string(req.Level)))
	return mcp.EmptyResult{}, nil
}
