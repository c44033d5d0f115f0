package main

import (
	"fmt"
	"io"
	"log/slog"
)

// logLevels are the names accepted by the log_level setting
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// parseLogLevel maps a log_level setting onto a slog level
func parseLogLevel(name string) (slog.Level, error) {
	level, ok := logLevels[name]
	if !ok {
		return slog.LevelInfo, fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", name)
	}
	return level, nil
}

// newLogger builds the planner's logger from validated config values. Grid
// edits and solves log at info, per-search detail from gridgraph at debug.
func newLogger(levelName, format string, w io.Writer) *slog.Logger {
	level, _ := parseLogLevel(levelName)
	opts := &slog.HandlerOptions{Level: level}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
