// Package logging builds the golog loggers shared by the library packages
// and the command line tool.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kataras/golog"
)

// Prefix is prepended to every log line.
const Prefix = "[springgraph] "

// ErrUnknownLevel is returned for level names golog does not know.
var ErrUnknownLevel = errors.New("unknown log level")

var levels = map[string]golog.Level{
	"debug":   golog.DebugLevel,
	"info":    golog.InfoLevel,
	"warn":    golog.WarnLevel,
	"error":   golog.ErrorLevel,
	"disable": golog.DisableLevel,
}

// ParseLevel maps a level name to a golog level. Empty means info.
func ParseLevel(name string) (golog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return golog.InfoLevel, nil
	}
	if name == "warning" {
		name = "warn"
	}
	lvl, ok := levels[name]
	if !ok {
		return golog.DisableLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return lvl, nil
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) (*golog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := golog.New()
	l.SetOutput(w)
	l.SetPrefix(Prefix)
	l.Level = lvl
	return l, nil
}

// Discard returns a logger that prints nothing.
func Discard() *golog.Logger {
	l := golog.New()
	l.SetOutput(io.Discard)
	l.Level = golog.DisableLevel
	return l
}
