// Package logging configures the process-wide slog logger. All lcaops
// output goes to stderr so stdout stays clean for command results.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init creates and sets the package-level default slog logger, writing
// text-formatted records to stderr at the given level.
func Init(level string) {
	slog.SetDefault(New(os.Stderr, ParseLevel(level)))
}

// New builds a text-handler logger for w. Split out from Init so tests can
// capture output without touching the process default.
func New(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewTextHandler(w, opts))
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel converts a level name to slog.Level. Unknown names fall back
// to LevelInfo rather than erroring, so a typo in LCAOPS_LOG_LEVEL never
// blocks startup.
func ParseLevel(s string) slog.Level {
	if lvl, ok := levels[strings.ToLower(s)]; ok {
		return lvl
	}
	return slog.LevelInfo
}
