// Package log wraps slog with component attribution and handler setup.
package log

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Logger adds a fixed component attribute to every message.
type Logger struct {
	*slog.Logger
	component string
}

// Setup builds the process-wide logger. format is "text", "json" or
// "pretty"; "pretty" uses a tint handler and is meant for development
// terminals.
func Setup(format string, level slog.Level) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "pretty":
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
		})
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithComponent returns a logger that tags every record with the
// component name.
func WithComponent(component string) *Logger {
	return &Logger{
		Logger:    slog.Default().With("component", component),
		component: component,
	}
}

// With returns a new logger with extra attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		component: l.component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}
