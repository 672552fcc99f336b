package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var setupOnce sync.Once

// New builds the process logger. name is attached to every entry, level is a
// zerolog level name ("debug", "info", ...) and falls back to info when it
// cannot be parsed, and w receives the output.
func New(name, level string, w io.Writer) zerolog.Logger {
	setupOnce.Do(func() {
		// For Google Cloud Logging, the level field name should be "severity".
		zerolog.LevelFieldName = "severity"
		zerolog.TimeFieldFormat = time.RFC3339Nano
	})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).With().Timestamp().Str("name", name).Logger()

	// Use ConsoleWriter for local development for more readable logs.
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w})
	}

	return logger.Level(lvl)
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
