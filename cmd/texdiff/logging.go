package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger shared by every command.
// -q shows warnings and errors only, -v adds debug lines and timestamps.
func newLogger(w io.Writer, quiet, verbose bool) *log.Logger {
	level := log.InfoLevel
	switch {
	case quiet:
		level = log.WarnLevel
	case verbose:
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "texdiff",
		Level:           level,
		ReportTimestamp: verbose,
	})
}
