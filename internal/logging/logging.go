// Package logging sets up the file logger. The terminal belongs to the
// panel, so records only ever go to a rotated log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envLogFile       = "AUTOGIT_LOG_FILE"
	envLogMaxSize    = "AUTOGIT_LOG_MAX_SIZE"
	envLogMaxBackups = "AUTOGIT_LOG_MAX_BACKUPS"
	envLogMaxAge     = "AUTOGIT_LOG_MAX_AGE"
)

// LogFilePath picks the log file: the configured path, then AUTOGIT_LOG_FILE,
// then ~/.autogit/logs/autogit.log. It returns "" when no home directory is
// known and nothing was configured.
func LogFilePath(configured string) string {
	if configured != "" {
		return configured
	}
	if path := os.Getenv(envLogFile); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".autogit", "logs", "autogit.log")
}

// DebugEnabled reports whether debug records should be written.
func DebugEnabled(flag bool) bool {
	return flag || os.Getenv("DEBUG") != ""
}

// newRotator creates a lumberjack logger with configuration from environment
// variables.
func newRotator(path string) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   false,
	}

	if v, err := strconv.Atoi(os.Getenv(envLogMaxSize)); err == nil && v > 0 {
		l.MaxSize = v
	}
	if v, err := strconv.Atoi(os.Getenv(envLogMaxBackups)); err == nil && v >= 0 {
		l.MaxBackups = v
	}
	if v, err := strconv.Atoi(os.Getenv(envLogMaxAge)); err == nil && v > 0 {
		l.MaxAge = v
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing text records to path. An empty path discards
// everything. The returned closer flushes the rotator and must be called on
// exit.
func New(path string, debug bool) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := newRotator(path)
	handler := slog.NewTextHandler(rotator, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
			}
			return a
		},
	})

	return slog.New(handler).With(slog.Int("pid", os.Getpid())), rotator, nil
}
