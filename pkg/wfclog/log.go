// Package wfclog is the package-level logger used across cmd/ and pkg/,
// grounded on pkg/common/log.go's call shape (Info/Verbose/Warning/Error,
// a VerboseEnabled toggle, an optional log file) but backed by zerolog
// instead of fmt.Println.
package wfclog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var (
	// VerboseEnabled controls whether Debug-level output is shown.
	VerboseEnabled = false

	logger = zerolog.New(consoleWriter()).With().Timestamp().Logger()
)

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
}

// SetLogFile redirects output to path in addition to stdout; pass "" to
// log to stdout only.
func SetLogFile(path string) error {
	if path == "" {
		logger = zerolog.New(consoleWriter()).With().Timestamp().Logger()
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	logger = zerolog.New(io.MultiWriter(consoleWriter(), f)).With().Timestamp().Logger()
	return nil
}

// Info logs at info level, always shown.
func Info(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

// Verbose logs at debug level, shown only when VerboseEnabled is set.
func Verbose(format string, args ...interface{}) {
	if !VerboseEnabled {
		return
	}
	logger.Debug().Msgf(format, args...)
}

// Debug is an alias for Verbose, kept for call-site parity with the
// logger this package replaces.
func Debug(format string, args ...interface{}) {
	Verbose(format, args...)
}

// Warning logs at warn level, always shown.
func Warning(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// Error logs at error level, always shown.
func Error(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

// WithOutcome returns a child logger carrying step/outcome fields, for
// step-by-step trace output.
func WithOutcome(step int, outcome string) zerolog.Logger {
	return logger.With().Int("step", step).Str("outcome", outcome).Logger()
}
