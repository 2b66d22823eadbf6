// Package logger provides the named, colored leveled logger used across the service.
package logger

import (
	"errors"
	"io"
	"log"
)

const (
	levelInfoColor    = "\033[32m"
	levelWarningColor = "\033[33m"
	levelErrorColor   = "\033[31m"
	colorReset        = "\033[0m"
)

// ErrNoName is returned when a logger is created without a name.
var ErrNoName = errors.New("logger name is required")

// Logger prints "[NAME] [LEVEL] message" lines, tinting the name.
type Logger struct {
	name  string
	color string
	out   *log.Logger
}

// New creates a logger writing to w.
func New(name, color string, w io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrNoName
	}
	return &Logger{
		name:  name,
		color: color,
		out:   log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print("INFO", levelInfoColor, msg)
}

// Warning logs a degraded but non-fatal condition.
func (l *Logger) Warning(msg string) {
	l.print("WARNING", levelWarningColor, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.print("ERROR", levelErrorColor, msg)
}

func (l *Logger) print(level, levelColor, msg string) {
	l.out.Printf("%s[%s]%s %s[%s]%s %s", l.color, l.name, colorReset, levelColor, level, colorReset, msg)
}
