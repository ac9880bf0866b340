// Package logging provides logging interfaces and utilities for crcbrute.
package logging

import (
	log "github.com/sirupsen/logrus"
)

// Logger is the interface for logging in crcbrute.
// Users can implement this interface to integrate with their logging system.
type Logger interface {
	// Debug logs a debug message
	Debug(msg string, fields ...Field)

	// Info logs an informational message
	Info(msg string, fields ...Field)

	// Warn logs a warning message
	Warn(msg string, fields ...Field)

	// Error logs an error message
	Error(msg string, fields ...Field)
}

// Field represents a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F is a convenience function to create a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoopLogger is a logger that does nothing.
type NoopLogger struct{}

// Debug implements Logger.
func (NoopLogger) Debug(string, ...Field) {}

// Info implements Logger.
func (NoopLogger) Info(string, ...Field) {}

// Warn implements Logger.
func (NoopLogger) Warn(string, ...Field) {}

// Error implements Logger.
func (NoopLogger) Error(string, ...Field) {}

// LogrusLogger adapts a logrus logger to the Logger interface.
type LogrusLogger struct {
	l *log.Logger
}

// NewLogrusLogger wraps the given logrus logger; nil wraps the logrus
// standard logger.
func NewLogrusLogger(l *log.Logger) *LogrusLogger {
	if l == nil {
		l = log.StandardLogger()
	}
	return &LogrusLogger{l: l}
}

// Debug implements Logger.
func (g *LogrusLogger) Debug(msg string, fields ...Field) {
	g.l.WithFields(logrusFields(fields)).Debug(msg)
}

// Info implements Logger.
func (g *LogrusLogger) Info(msg string, fields ...Field) {
	g.l.WithFields(logrusFields(fields)).Info(msg)
}

// Warn implements Logger.
func (g *LogrusLogger) Warn(msg string, fields ...Field) {
	g.l.WithFields(logrusFields(fields)).Warn(msg)
}

// Error implements Logger.
func (g *LogrusLogger) Error(msg string, fields ...Field) {
	g.l.WithFields(logrusFields(fields)).Error(msg)
}

func logrusFields(fields []Field) log.Fields {
	out := make(log.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
