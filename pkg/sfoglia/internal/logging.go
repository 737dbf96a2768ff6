// Package internal holds infrastructure for the sfoglia engine that is not
// part of the public API.
package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string

	setupOnce sync.Once
	logWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar
)

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories. When unset, logging goes to
// stderr only. Must be called before the first GetLogger call to take
// effect.
func SetLogPath(path string) {
	logPath = path
}

func setup() {
	setupOnce.Do(func() {
		if logPath == "" {
			logWriter = os.Stderr
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			logWriter = os.Stderr
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, fall back to console-only
			logWriter = os.Stderr
			return
		}

		logWriter = io.MultiWriter(os.Stderr, logFile)
	})
}

// GetLogger returns the shared engine logger. The default level is Info;
// the engine core only emits Debug traces, so it stays silent unless a host
// opts in via SetRawLogLevel.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
	})
	return logger
}

// SetRawLogLevel sets the log level from its string form. Unknown strings
// fall back to Info.
func SetRawLogLevel(rawLevel string) {
	var level slog.Level

	switch strings.ToLower(rawLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	GetLogger()
	levelVar.Set(level)
}

// CloseLogger closes the log file if one was opened.
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
