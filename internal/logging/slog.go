package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger adapts *slog.Logger to Logger. It backs the json and text
// formats.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps an existing slog logger.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// newSlogHandler returns the handler for a slog-backed format at info level.
// ok is false for formats slog does not serve.
func newSlogHandler(format string, w io.Writer) (slog.Handler, bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch format {
	case FormatJSON, "":
		return slog.NewJSONHandler(w, opts), true
	case FormatText:
		return slog.NewTextHandler(w, opts), true
	default:
		return nil, false
	}
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	s.l.Log(ctx, level, msg, args...)
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

// With returns a logger that adds args to every record, e.g. the request
// method and path.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
