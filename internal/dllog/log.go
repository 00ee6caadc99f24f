// Package dllog is a small logrus wrapper used by plan and engine to trace
// admissibility, forbid and inline decisions at Debug level, in the style
// of the pack's own logrus wrapper (open-policy-agent-opa's log package),
// trimmed down for a library rather than a long-running service: no global
// singleton logger, no level-name parsing from a config file, just a
// constructor and the handful of methods dlinline's stages actually call.
package dllog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields aliases logrus.Fields, letting callers build structured log
// entries without importing logrus directly.
type Fields = logrus.Fields

// Entry aliases logrus.Entry.
type Entry = logrus.Entry

// Logger is the interface plan.Planner and engine.Engine hold. A nil Logger
// is valid everywhere it's accepted and every call becomes a no-op.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	WithFields(Fields) *Entry
}

type logger struct {
	entry *logrus.Entry
}

// New returns a Logger backed by a fresh logrus.Logger at the given level
// name ("debug", "info", "warn", "error"); an unrecognized level falls back
// to Info.
func New(level string) Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return logger{entry: logrus.NewEntry(l)}
}

func (l logger) Debug(args ...interface{}) { l.entry.Debug(args...) }

func (l logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l logger) WithFields(fields Fields) *Entry { return l.entry.WithFields(fields) }

// nopLogger discards everything; used whenever a caller configures no
// Logger at all so plan/engine call sites never need a nil check.
type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(args ...interface{})                 {}
func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) WithFields(Fields) *Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
