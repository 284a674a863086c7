// Package logging builds the slog logger used by the CLI and the transport.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/torosent/redcaplite/internal/config"
)

const redacted = "[REDACTED]"

// ParseLevel maps a level name onto slog. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New returns a logger writing to w at the configured level and format. Any
// attribute named token is masked.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: redactToken,
	}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func redactToken(_ []string, a slog.Attr) slog.Attr {
	if strings.EqualFold(a.Key, "token") {
		return slog.String(a.Key, redacted)
	}
	return a
}
