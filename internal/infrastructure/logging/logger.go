package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/infrastructure/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the application logger from the logging config.
// The returned closer releases the log file when output is "file".
func NewLogger(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		out, closer = f, f
	default:
		out = os.Stderr
	}

	return newLogger(out, cfg.Format, level, cfg.IncludeCaller), closer, nil
}

func newLogger(out io.Writer, format string, level zerolog.Level, caller bool) zerolog.Logger {
	if format == "text" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
