// Package vlog provides the small leveled logger used throughout vpxcore to
// report recoverable conditions (unknown tags, anomalous records) without
// aborting a read. It mirrors the Logger/Helper split the container format
// parsers in this codebase's lineage use, so callers can plug in their own
// sink by implementing Logger.
package vlog

import (
	"fmt"
	"io"
	"log"
)

// Level is the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every vpxcore component logs through.
type Logger interface {
	Log(level Level, msg string)
}

// StdLogger writes log entries to an io.Writer using the stdlib log package.
type StdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger that writes to w.
func NewStdLogger(w io.Writer) *StdLogger {
	return &StdLogger{l: log.New(w, "", log.LstdFlags)}
}

func (s *StdLogger) Log(level Level, msg string) {
	s.l.Printf("[%s] %s", level, msg)
}

// filter wraps a Logger and drops entries below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// NewFilter returns a Logger that only forwards entries at or above min.
func NewFilter(next Logger, min Level) Logger {
	return &filter{next: next, min: min}
}

func (f *filter) Log(level Level, msg string) {
	if level < f.min {
		return
	}
	f.next.Log(level, msg)
}

// Helper adds printf-style convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) Debugf(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(LevelDebug, fmt.Sprintf(format, args...))
}

func (h *Helper) Warnf(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(LevelWarn, fmt.Sprintf(format, args...))
}

func (h *Helper) Errorf(format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(LevelError, fmt.Sprintf(format, args...))
}

func (h *Helper) Warn(msg string) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(LevelWarn, msg)
}
