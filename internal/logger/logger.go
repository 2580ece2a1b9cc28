// Package logger создаёт структурированный журнал приложения.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New возвращает текстовый slog.Logger, пишущий в stderr.
func New(level slog.Leveler) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter возвращает логгер поверх произвольного writer.
func NewWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// ParseLevel переводит строку debug|info|warn|error в уровень; по умолчанию info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Discard логгер, который ничего не пишет.
func Discard() *slog.Logger {
	return NewWithWriter(io.Discard, slog.LevelError)
}
