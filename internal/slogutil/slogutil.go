package slogutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a slog.Logger with cxxtract's line format.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(w, level))
}

// NewFileLogger creates a logger appending to the given path, creating the
// file if needed. The caller owns closing the returned file.
func NewFileLogger(path string, level slog.Level) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f, nil
}

// NewDiscardLogger creates a logger that drops everything. Used by tests and
// by callers that pass no logger.
func NewDiscardLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that drops everything it receives, for
// Go toolchains older than the slog.DiscardHandler added in Go 1.24.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h discardHandler) WithGroup(name string) slog.Handler       { return h }

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// LevelFromString maps a level name (case-insensitive) to a slog.Level.
// Unrecognized names fall back to info.
func LevelFromString(s string) slog.Level {
	if level, ok := levelNames[strings.ToLower(s)]; ok {
		return level
	}
	return slog.LevelInfo
}

// LevelFromVerbosity maps CLI verbosity flags to a slog.Level: quiet
// suppresses everything, the default is warn, -v is info, -vv and up is
// debug.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelError + 4
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
