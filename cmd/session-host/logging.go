package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "session-host.log"
)

// setupLogging writes logs to logs/session-host.log when debug is set, otherwise discards them
// The terminal owns stdout/stderr while the screen is active, so logs never go there
// Returns the open log file for the caller to close, nil when logging is disabled or failed
func setupLogging(debug bool, level zerolog.Level) (zerolog.Logger, *os.File) {
	if !debug {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.New(io.Discard).Level(zerolog.Disabled), nil
	}

	logger := zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, f
}
