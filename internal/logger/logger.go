// Package logger configures the process-wide zerolog logger. The terminal UI
// owns stdout, so logs are written to a file.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global logger at the configured file. If the file cannot be
// opened the logger is disabled rather than allowed to corrupt the UI.
func Init(logFile, level string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if logFile == "" {
		log.Logger = zerolog.Nop()
		return
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithRequest returns a child logger tagged with a unique request id, used to
// correlate a gateway call with its outcome.
func WithRequest() zerolog.Logger {
	return log.With().Str("requestId", uuid.NewString()).Logger()
}
