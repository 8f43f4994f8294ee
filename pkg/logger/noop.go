package logger

import "context"

type noopLogger struct{}

// NewNoop returns a logger that discards everything. Used by tests.
func NewNoop() Logger { return noopLogger{} }

func (noopLogger) Debug(context.Context, string, ...Field)        {}
func (noopLogger) Info(context.Context, string, ...Field)         {}
func (noopLogger) Warn(context.Context, string, ...Field)         {}
func (noopLogger) Error(context.Context, string, error, ...Field) {}
func (noopLogger) Fatal(context.Context, string, error, ...Field) {}
func (n noopLogger) WithComponent(string) Logger                  { return n }
