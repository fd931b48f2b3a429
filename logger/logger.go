package logger

import "log"

// Logger defines the interface for logging used within the interpose
// toolkit. It provides leveled formatted printing plus fatal errors which
// halt the program, ensuring consistent logging behavior across all
// components.
type Logger interface {
	Printf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}

// StandardLogger implements the Logger interface using Go's standard log
// package.
type StandardLogger struct{}

// Printf logs a formatted message using the standard log package's Printf
// method.
func (l *StandardLogger) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Warnf logs a formatted warning message.
func (l *StandardLogger) Warnf(format string, v ...interface{}) {
	log.Printf("warn: "+format, v...)
}

// Errorf logs a formatted error message.
func (l *StandardLogger) Errorf(format string, v ...interface{}) {
	log.Printf("error: "+format, v...)
}

// Fatalf logs a formatted message and then terminates the program using the
// standard log package's Fatalf method.
func (l *StandardLogger) Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}
