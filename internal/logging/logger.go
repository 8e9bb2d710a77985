// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zap backends.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr, "store", "memory")
type Logger interface {
	// Debug logs diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported output formats for New.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatZap  = "zap"
)

// New builds a Logger writing to w in the given format.
func New(format string, w io.Writer) (Logger, error) {
	if h, ok := newSlogHandler(format, w); ok {
		return NewSlogLogger(slog.New(h)), nil
	}

	switch format {
	case FormatZap:
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			zapcore.InfoLevel,
		)
		return NewZapLogger(zap.New(core)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
