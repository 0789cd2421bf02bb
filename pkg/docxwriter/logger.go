package docxwriter

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	globalLogger   *log.Logger
	globalLoggerMu sync.RWMutex
)

func init() {
	level, err := log.ParseLevel(ConfigFromEnvironment().LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	globalLogger = NewLogger(os.Stderr, level)
}

// NewLogger returns a logger in the format used by the command line tool
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SetLogger replaces the package logger used by writers created without
// WithLogger
func SetLogger(logger *log.Logger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if logger == nil {
		logger = NewLogger(io.Discard, log.InfoLevel)
	}
	globalLogger = logger
}

// GetLogger returns the package logger
func GetLogger() *log.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}
