package wikigo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with wikigo-specific helpers.
// This provides structured logging with consistent field names.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogSet logs a store write.
func (l *Logger) LogSet(title string, created bool) {
	l.Debug("tiddler set",
		"title", title,
		"created", created,
	)
}

// LogDelete logs a store removal.
func (l *Logger) LogDelete(title string, found bool) {
	l.Debug("tiddler deleted",
		"title", title,
		"found", found,
	)
}

// LogImport logs a guarded import decision.
func (l *Logger) LogImport(title string, accepted bool) {
	if accepted {
		l.Debug("tiddler imported",
			"title", title,
		)
	} else {
		l.Warn("tiddler import rejected",
			"title", title,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(query string, results int) {
	l.Debug("search completed",
		"query", query,
		"results", results,
	)
}

// LogRender logs a render operation.
func (l *Logger) LogRender(title, outputType string) {
	l.Debug("render completed",
		"title", title,
		"output_type", outputType,
	)
}

// LogLazyLoad logs a lazy body load attempt.
func (l *Logger) LogLazyLoad(title string, err error) {
	if err != nil {
		l.Warn("lazy load failed",
			"title", title,
			"error", err,
		)
	} else {
		l.Debug("lazy load completed",
			"title", title,
		)
	}
}
