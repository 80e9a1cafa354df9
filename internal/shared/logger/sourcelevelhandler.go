package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceLevelHandler attaches the caller location to records at or above a
// minimum level. The wrapped handler should be built with AddSource: false.
type sourceLevelHandler struct {
	next     slog.Handler
	minLevel slog.Level
}

// NewSourceLevelHandler wraps next so that records at minLevel and above carry
// a source attribute.
func NewSourceLevelHandler(next slog.Handler, minLevel slog.Level) slog.Handler {
	return &sourceLevelHandler{next: next, minLevel: minLevel}
}

func (h *sourceLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceLevelHandler{next: h.next.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *sourceLevelHandler) WithGroup(name string) slog.Handler {
	return &sourceLevelHandler{next: h.next.WithGroup(name), minLevel: h.minLevel}
}
