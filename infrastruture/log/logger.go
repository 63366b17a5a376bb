// Package logger provides a small leveled logger that prefixes every line
// with a colored component tag.
package logger

import (
	"errors"
	"io"
	"log"
	"sync"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

var ErrNilWriter = errors.New("logger writer is nil")

// Logger writes "[PREFIX] [LEVEL] message" lines to its writer.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
	mu     sync.Mutex
}

// New creates a Logger tagging lines with prefix painted in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", l.color, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", colorYellow, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", colorRed, msg)
}

func (l *Logger) write(level, levelColor, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("%s[%s]%s %s[%s]%s %s", l.color, l.prefix, colorReset, levelColor, level, colorReset, msg)
}
