package log

// nullLogger discards everything. Used by default so headless uses
// (tests, save-state tooling) don't pay for log formatting.
type nullLogger struct{}

// NewNullLogger returns a Logger that discards every message.
func NewNullLogger() Logger { return &nullLogger{} }

func (nullLogger) Infof(format string, args ...interface{})  {}
func (nullLogger) Errorf(format string, args ...interface{}) {}
func (nullLogger) Debugf(format string, args ...interface{}) {}
