// Package logging provides the shared logger for zengrid.
//
// It wraps [log/slog] with a single initialization point so every component
// shares one handler and level. The level comes from the ZENGRID_LOG_LEVEL
// environment variable (debug, info, warn, error); the default is INFO.
// Output goes to stderr so it stays out of the TUI on stdout.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	initLogger sync.Once
	baseLogger *slog.Logger
)

// New returns a logger scoped to the given component name. The name is added
// as a "component" attribute on every entry; an empty name returns the base
// logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("ZENGRID_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
