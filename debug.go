package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var debugLog *logrus.Logger

// EnableDebugLogging routes DebugLogf to a log file in the temp dir. The
// TUI owns stdout, so debug output never goes there.
func EnableDebugLogging(enabled bool) {
	if !enabled {
		debugLog = nil
		return
	}
	path := filepath.Join(os.TempDir(), "cli-tetris-debug.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	debugLog = logger
}

func DebugLogf(format string, args ...any) {
	if debugLog == nil {
		return
	}
	debugLog.Debugf(format, args...)
}
