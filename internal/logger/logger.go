package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"essential-notes/internal/config"
)

// ParseLevel переводит строковый уровень из конфигурации в slog.Level.
// Неизвестные значения трактуются как info.
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

// New создает логгер по настройкам и устанавливает его как slog.Default
func New(cfg *config.ConfigLogger) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter создает логгер, пишущий в w
func NewWithWriter(cfg *config.ConfigLogger, w io.Writer) *slog.Logger {
	var level, format string
	if cfg != nil {
		level, format = cfg.Level, cfg.Format
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}
