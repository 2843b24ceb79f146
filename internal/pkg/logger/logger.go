// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls logger output.
type Config struct {
	Level  string
	Pretty bool
}

// Configure sets up the global zerolog logger. Pretty output is meant
// for development; production gets plain JSON on stdout.
func Configure(cfg Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
}

// Debug starts a debug-level event on the global logger.
func Debug() *zerolog.Event { return log.Debug() }

// Info starts an info-level event on the global logger.
func Info() *zerolog.Event { return log.Info() }

// Warn starts a warn-level event on the global logger.
func Warn() *zerolog.Event { return log.Warn() }

// Error starts an error-level event on the global logger.
func Error() *zerolog.Event { return log.Error() }

// Fatal starts a fatal-level event on the global logger.
func Fatal() *zerolog.Event { return log.Fatal() }
