package app

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI logger: console writer on stderr, level parsed
// from config (unknown levels fall back to info).
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
