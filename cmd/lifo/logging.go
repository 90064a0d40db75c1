package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type simpleHandler struct {
	level  slog.Level
	writer io.Writer
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log level must be one of: debug, info, warn, error")
	}
}

// setupLogging installs the default logger. Output goes to logFile when set,
// otherwise to stderr. The returned func closes the log file, if any.
func setupLogging(level string, logFile string) (func() error, error) {
	logLevel, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}

	var writer io.Writer = os.Stderr
	closeLog := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		writer = f
		closeLog = f.Close
	}

	handler := &simpleHandler{
		level:  logLevel,
		writer: writer,
	}
	slog.SetDefault(slog.New(handler))
	return closeLog, nil
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *simpleHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level.String()
	msg := r.Message
	var attrs []string
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s='%v'", a.Key, a.Value))
		return true
	})
	if len(attrs) > 0 {
		fmt.Fprintf(h.writer, "%s: %s (%s)\n", level, msg, strings.Join(attrs, " "))
	} else {
		fmt.Fprintf(h.writer, "%s: %s\n", level, msg)
	}
	return nil
}

func (h *simpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(name string) slog.Handler {
	return h
}
