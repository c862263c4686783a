// Package log provides the small logging interface the emulator core
// and drivers log through, backed by logrus.
package log

import "github.com/sirupsen/logrus"

// Logger is the subset of logging the core needs. The bus logs
// unmapped IO access through one of these; drivers can supply their
// own instead of the default.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	entry *logrus.Logger
}

// New returns a Logger that writes structured, leveled output via
// logrus, with debug-level messages enabled.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return &logger{entry: l}
}

func (l *logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
