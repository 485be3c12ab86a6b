package shared

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger at the named level. debug forces
// debug level regardless of level.
func SetupLogger(level string, debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
