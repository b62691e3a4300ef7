package logger

import (
	"io"
	"os"

	"novapanel/internal/config"

	"github.com/rs/zerolog"
)

// New builds the root logger from config. Unknown levels fall back to info.
func New(cfg config.Log) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
