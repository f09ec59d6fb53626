package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/aisparser/pkg/log"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

// Logger returns the process logger. It writes console lines to stderr
// until ConfigureLogger replaces it.
func Logger() zerolog.Logger {
	return logger
}

// ConfigureLogger rebuilds the process logger for format and sets the global
// level. Records go to stdout, so logs always go to w (stderr in the CLI).
func ConfigureLogger(w io.Writer, format, level string) zerolog.Logger {
	logger = log.NewZerologAdapter(w, format).Logger()
	log.SetLevel(level)
	return logger
}
