package internal

import (
	"log"
	"os"
)

// LogLevel controls logging verbosity.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging over the stdlib logger.
type Logger struct {
	level LogLevel
}

// NewLogger creates a logger at the given level.
func NewLogger(level LogLevel) *Logger { return &Logger{level: level} }

// NewDefaultLogger creates a logger from the LOG_LEVEL environment variable,
// defaulting to INFO.
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{level: level}
}

// Error logs error messages.
func (l *Logger) Error(format string, args ...interface{}) { l.printf(LogLevelError, "[ERROR] ", format, args...) }

// Warn logs warning messages.
func (l *Logger) Warn(format string, args ...interface{}) { l.printf(LogLevelWarn, "[WARN] ", format, args...) }

// Info logs info messages.
func (l *Logger) Info(format string, args ...interface{}) { l.printf(LogLevelInfo, "[INFO] ", format, args...) }

// Debug logs debug messages.
func (l *Logger) Debug(format string, args ...interface{}) { l.printf(LogLevelDebug, "[DEBUG] ", format, args...) }

func (l *Logger) printf(level LogLevel, prefix, format string, args ...interface{}) {
	if l.level >= level {
		log.Printf(prefix+format, args...)
	}
}

// DefaultLogger is the shared application logger.
var DefaultLogger = NewDefaultLogger()
