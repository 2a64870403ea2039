// Package logging builds the process *slog.Logger. Records are rendered by
// zerolog: a console writer for local runs, JSON lines otherwise.
package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

// Format values understood by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w. debug lowers the level to Debug.
func New(w io.Writer, format string, debug bool) *slog.Logger {
	var zl zerolog.Logger
	if format == FormatJSON {
		zl = zerolog.New(w).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Stamp}
		zl = zerolog.New(output).With().Timestamp().Logger()
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(zeroslog.NewHandler(zl, &zeroslog.HandlerOptions{Level: level}))
}

// Error returns an "error" attribute holding err's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
