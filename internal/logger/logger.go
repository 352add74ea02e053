package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the CLI logger. Output goes to stderr so it never mixes
// with command output; debug detail is off unless verbose is set.
func New(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
