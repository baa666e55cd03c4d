package screens

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures NewFileLogger. Sizes follow lumberjack: megabytes
// and days.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

var (
	levelVar      = newLevelVar(slog.LevelWarn)
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
	logger        = defaultLogger
)

func newLevelVar(l slog.Level) *slog.LevelVar {
	v := &slog.LevelVar{}
	v.Set(l)
	return v
}

// Logger returns the package logger containers fall back to.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the package logger. Nil restores the stderr default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = defaultLogger
	}
	logger = l
}

// SetLogLevel sets the level of the default stderr logger.
func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

// ParseLogLevel maps debug, info, warn/warning and error to slog levels.
// Anything else is info.
func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
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

// NewFileLogger returns a JSON logger writing to a rotating file. The
// returned closer releases the file. With no File set the logger writes to
// stderr and the closer is a no-op.
func NewFileLogger(cfg LogConfig) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLogLevel(cfg.Level)}
	if cfg.File == "" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, err
	}
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	if w.MaxSize <= 0 {
		w.MaxSize = 1
	}
	return slog.New(slog.NewJSONHandler(w, opts)), w, nil
}
