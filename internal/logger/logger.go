package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

var (
	// globalLogger holds the process logger once Init has run.
	globalLogger *Logger
	once         sync.Once
)

// Init configures the process logger. Only the first call has any effect;
// later calls return the logger built by the first one.
func Init(level, encoding string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, encoding)
	})
	return globalLogger
}

// Get returns the process logger, building an info-level console logger if
// Init was never called.
func Get() *Logger {
	return Init(InfoLevel, ConsoleEncoding)
}
