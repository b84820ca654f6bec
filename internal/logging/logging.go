// Package logging builds the zerolog logger shared by the CLI and the MCP server.
//
// Logs always go to stderr: in server mode stdout carries the JSON-RPC protocol.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects the level and output format.
type Options struct {
	Level  string // debug, info, warn or error; empty means info
	Format string // "json" (default) or "console"
}

// New creates a timestamped logger writing to w.
//
// An unrecognised level falls back to info rather than failing startup.
func New(w io.Writer, opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(opts.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
