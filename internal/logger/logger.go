// Package logger builds the process logger on log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger for production and a text logger at debug level otherwise.
// The returned logger is also installed as the slog default.
func New(production bool) *slog.Logger {
	l := newWithWriter(os.Stdout, production)
	slog.SetDefault(l)
	return l
}

func newWithWriter(w io.Writer, production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
