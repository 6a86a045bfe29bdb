// Package logging provides Kestrel's logging infrastructure built on
// charmbracelet/log.
//
// It centralizes level configuration and component-prefixed child loggers.
// All log output goes to stderr; stdout is reserved for board output
// (tables, JSON).
//
// Usage:
//
//	// During CLI initialization (PersistentPreRunE):
//	logging.Setup(verbose, quiet, jsonFormat)
//
//	// In each package:
//	var logger = logging.New("workspace")
//	logger.Info("loaded board", "path", path, "tasks", n)
//
// Setup must run before New: charmbracelet/log child loggers copy state at
// creation time, so later changes to the default logger do not propagate to
// existing children.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels, re-exported so consumers do
// not import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Setup configures the global logging defaults. Call once during CLI
// initialization. If both verbose and quiet are set, quiet wins so that
// scripted invocations stay silent regardless of other flags. jsonFormat
// switches to NDJSON output for log aggregation.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. The returned logger
// inherits global level and output settings at creation time.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger. Primarily
// for tests capturing output in a bytes.Buffer; restore with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
