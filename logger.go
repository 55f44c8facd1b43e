package isosurface

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with extraction specific helpers so that
// field names stay consistent across the package.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// LogNoSignChange reports an edge whose endpoints share sign. The crossing
// point for it was replaced by the edge midpoint.
func (l *Logger) LogNoSignChange(e Edge, fa, fb float64) {
	l.Warn("edge has no sign change, using midpoint",
		"a", int(e[0]),
		"b", int(e[1]),
		"fa", fa,
		"fb", fb,
	)
}

// LogExtraction logs the outcome of a MakeMesh call.
func (l *Logger) LogExtraction(tetras, points, triangles, degraded int) {
	if degraded > 0 {
		l.Warn("mesh extracted with degraded edges",
			"tetrahedra", tetras,
			"points", points,
			"triangles", triangles,
			"degraded", degraded,
		)
		return
	}
	l.Debug("mesh extracted",
		"tetrahedra", tetras,
		"points", points,
		"triangles", triangles,
	)
}
