package ui

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns the logger kr writes command lines and warnings to.
// debug lowers the level to debug; quiet raises it to warn.
func NewLogger(w io.Writer, debug, quiet bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "kr",
		ReportTimestamp: false,
	})
	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.WarnLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}
