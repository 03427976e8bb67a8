package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir        = "logs"
	logFileName   = "vt-tetris.log"
	maxLogSizeMB  = 10
	maxLogSize    = maxLogSizeMB * 1024 * 1024
	maxLogBackups = 3
)

// setupLogging routes the standard logger to a rotating file when debug is set.
// Without debug all log output is discarded so nothing reaches the terminal.
func setupLogging(debug bool) *lumberjack.Logger {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logger := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
	}
	log.SetOutput(logger)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("vt-tetris: logging to %s", logger.Filename)
	return logger
}

// closeLogging releases the log file and discards anything logged afterwards
func closeLogging(logger *lumberjack.Logger) {
	log.SetOutput(io.Discard)
	logger.Close()
}
