// Package slogutil provides the slog handler and helpers for cxxtract logging.
package slogutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Handler renders records as single text lines:
//
//	2026-08-06T12:04:05.120Z INFO extracted file file=src/a.cpp entities=3
//
// Attributes bound with WithAttrs are rendered once, up front, and reused on
// every record. Group names become dot-joined key prefixes. Values containing
// whitespace, quotes or '=' are quoted so lines stay machine-splittable.
type Handler struct {
	w     io.Writer
	level slog.Leveler
	mu    *sync.Mutex

	prefix       string // dot-terminated group prefix applied to attr keys
	preformatted []byte // attrs bound via WithAttrs, already rendered
}

// NewHandler creates a handler writing at or above the given level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders and writes one record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = r.Time.UTC().AppendFormat(buf, "2006-01-02T15:04:05.000Z")
	buf = append(buf, ' ')
	buf = append(buf, levelTag(r.Level)...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)
	buf = append(buf, h.preformatted...)
	r.Attrs(func(a slog.Attr) bool {
		buf = appendAttr(buf, h.prefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

// WithAttrs renders the attributes now, under the current group prefix, and
// returns a handler carrying the combined preformatted bytes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rendered := make([]byte, len(h.preformatted), len(h.preformatted)+32*len(attrs))
	copy(rendered, h.preformatted)
	for _, a := range attrs {
		rendered = appendAttr(rendered, h.prefix, a)
	}
	h2 := *h
	h2.preformatted = rendered
	return &h2
}

// WithGroup extends the key prefix for subsequently added attributes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Key == "" {
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendQuoted(buf, v.String())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(buf, time.RFC3339)
	default:
		return appendQuoted(buf, fmt.Sprint(v.Any()))
	}
}

func appendQuoted(buf []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func levelTag(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}
