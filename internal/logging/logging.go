// Package logging configures the process-wide phuslu logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// New builds a logger writing to w. format "json" emits one JSON object per
// line; anything else uses the console writer. Debug level adds the caller.
func New(level, format string, w io.Writer) log.Logger {
	lvl := log.ParseLevel(strings.ToLower(level))
	l := log.Logger{
		Level:      lvl,
		TimeFormat: "15:04:05.000",
	}
	if lvl <= log.DebugLevel {
		l.Caller = 1
	}
	if strings.EqualFold(format, "json") {
		l.Writer = &log.IOWriter{Writer: w}
	} else {
		l.Writer = &log.ConsoleWriter{Writer: w, ColorOutput: w == os.Stderr || w == os.Stdout}
	}
	return l
}

// Setup installs a stderr logger as log.DefaultLogger and returns it.
func Setup(level, format string) *log.Logger {
	log.DefaultLogger = New(level, format, os.Stderr)
	return &log.DefaultLogger
}
