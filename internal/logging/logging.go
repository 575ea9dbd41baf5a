// Package logging configures the zerolog global logger for the commands.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing to w. format "json" keeps zerolog's native
// output; anything else uses the human console writer. An unknown level
// falls back to info.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Setup installs New(os.Stderr, ...) as the global logger and returns it.
func Setup(level, format string) zerolog.Logger {
	l := New(os.Stderr, level, format)
	log.Logger = l
	return l
}
