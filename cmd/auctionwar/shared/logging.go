package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// SetupLogger creates the process logger writing to stderr. level is one
// of debug, info, warn or error.
func SetupLogger(level string, jsonFormat bool) (*log.Logger, error) {
	return NewLogger(os.Stderr, level, jsonFormat)
}

// NewLogger creates a logger writing to w
func NewLogger(w io.Writer, level string, jsonFormat bool) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	if jsonFormat {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger, nil
}

// SetupColor turns off styling everywhere when colour is not wanted
func SetupColor(noColor bool, logger *log.Logger) {
	if !noColor {
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	logger.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}
