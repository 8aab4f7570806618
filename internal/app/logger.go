package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logging defaults used when neither a flag nor a config file sets them.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// newLogger builds an isolated logger writing to outW; the global logger is
// left alone. Levels are the slog names, case-insensitive, with optional
// offsets such as "warn+2".
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(formatStr) {
	case "json":
		return slog.New(slog.NewJSONHandler(outW, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(outW, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", formatStr)
	}
}

// firstSet returns the first non-empty value.
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
