package cli

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. Human-readable console output on
// stderr; debug level (including per-request API logging) only when verbose.
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
