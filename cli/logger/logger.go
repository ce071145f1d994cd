package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type Options struct {
	Level  string `doc:"log from debug, info, warn or error"`
	File   string `doc:"append logs to file"`
	Format string `doc:"format logs as text, json or console" default:"text"`
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

func New(options *Options) *slog.Logger {
	return NewWithOutput(options, os.Stdout)
}

// NewWithOutput is [New] writing to stdout instead of [os.Stdout] when
// options do not name a file.
func NewWithOutput(options *Options, stdout io.Writer) *slog.Logger {
	level, ok := level(options.Level)
	if !ok {
		options.Level = ""
		logger := NewWithOutput(options, stdout)
		logger.Warn("could not parse logger level")
		return logger
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	switch options.File {
	case "", "-":
		output = stdout
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		var err error
		output, err = os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.File = ""
			logger := NewWithOutput(options, stdout)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	case "text":
		return slog.New(slog.NewTextHandler(output, &opts))
	case "console":
		return slog.New(tint.NewHandler(output, &tint.Options{
			Level:      level,
			TimeFormat: time.StampMilli,
			NoColor:    !isTerminal(output),
		}))
	default:
		options.Format = "text"
		logger := NewWithOutput(options, stdout)
		logger.Warn("could not parse logger format")
		return logger
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
