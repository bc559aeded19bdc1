// Package logging builds the process logger.
//
// stdout carries the MCP protocol, so runtime logs always go to stderr.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileCLI
	ProfileTest
)

// New returns a logger for profile at the named level. Unknown level names
// fall back to info.
//
// The runtime profile writes JSON lines with timestamps to stderr. The CLI
// profile writes human-readable console lines to stderr. The test profile
// discards everything.
func New(profile Profile, level string) zerolog.Logger {
	return NewWithWriter(profile, level, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(profile Profile, level string, w io.Writer) zerolog.Logger {
	if profile == ProfileTest {
		return zerolog.Nop()
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = w
	if profile == ProfileCLI {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("component", "image-stego-mcp").
		Logger()
}
