package logger

// noopLogger discards everything. Used by tests and optional components.
type noopLogger struct{}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (n *noopLogger) InitLogger()                                    {}
func (n *noopLogger) Debug(args ...interface{})                      {}
func (n *noopLogger) Debugf(template string, args ...interface{})    {}
func (n *noopLogger) Info(args ...interface{})                       {}
func (n *noopLogger) Infof(template string, args ...interface{})     {}
func (n *noopLogger) Warn(args ...interface{})                       {}
func (n *noopLogger) Warnf(template string, args ...interface{})     {}
func (n *noopLogger) Error(args ...interface{})                      {}
func (n *noopLogger) Errorf(template string, args ...interface{})    {}
func (n *noopLogger) Fatal(args ...interface{})                      {}
func (n *noopLogger) Fatalf(template string, args ...interface{})    {}
