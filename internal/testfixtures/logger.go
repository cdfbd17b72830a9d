package testfixtures

import (
	"fmt"
	"sync"
)

// Logger records formatted log lines so tests can assert on them.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

// NewLogger returns an empty recording logger.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) record(level, format string, v ...interface{}) {
	l.mu.Lock()
	l.entries = append(l.entries, level+" "+fmt.Sprintf(format, v...))
	l.mu.Unlock()
}

func (l *Logger) Info(format string, v ...interface{})  { l.record("INFO", format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.record("WARN", format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.record("ERROR", format, v...) }

// Entries returns a copy of the recorded lines.
func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}
