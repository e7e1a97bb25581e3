package app

import (
	"io"
	"log/slog"
)

// NewLogger builds the text logger used by both binaries. verbose enables
// debug output.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
