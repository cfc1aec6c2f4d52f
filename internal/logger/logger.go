// Package logger provides the shared structured logger for the monitoring
// service. Every component (HTTP handlers, websocket feed, startup wiring)
// logs through the same sugared instance so output stays uniform.
package logger

import (
	"sync"
)

// Log levels accepted from the log_level config key.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns the singleton logger configured with the provided level.
// The first caller (main, after reading config) fixes the level; later
// calls ignore their argument and return the same instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}
