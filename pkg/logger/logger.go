// Package logger provides structured logging for the bizcomply service on
// top of zap. Every log call takes a context so request-scoped fields
// (request ID) are attached automatically.
package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bizcomply/bizcomply/pkg/constants"
)

// Logger is the structured logging interface used throughout the service.
type Logger interface {
	Debug(ctx context.Context, message string, fields ...Field)
	Info(ctx context.Context, message string, fields ...Field)
	Warn(ctx context.Context, message string, fields ...Field)
	Error(ctx context.Context, message string, err error, fields ...Field)
	Fatal(ctx context.Context, message string, err error, fields ...Field)

	// WithComponent returns a logger that tags every entry with a component name.
	WithComponent(component string) Logger
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an integer field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a boolean field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Any creates a field of any type.
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

type zapLogger struct {
	log *zap.Logger
}

// Options configures the zap-backed logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// New creates a production logger writing JSON (or console) lines to stdout.
func New(opts Options) (Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, err
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	var encoder zapcore.Encoder
	if opts.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
	return &zapLogger{log: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}, nil
}

// MustNew creates a logger and panics on configuration errors. Intended for
// process startup only.
func MustNew(opts Options) Logger {
	log, err := New(opts)
	if err != nil {
		panic(err)
	}
	return log
}

func (l *zapLogger) Debug(ctx context.Context, message string, fields ...Field) {
	l.log.Debug(message, l.zapFields(ctx, nil, fields)...)
}

func (l *zapLogger) Info(ctx context.Context, message string, fields ...Field) {
	l.log.Info(message, l.zapFields(ctx, nil, fields)...)
}

func (l *zapLogger) Warn(ctx context.Context, message string, fields ...Field) {
	l.log.Warn(message, l.zapFields(ctx, nil, fields)...)
}

func (l *zapLogger) Error(ctx context.Context, message string, err error, fields ...Field) {
	l.log.Error(message, l.zapFields(ctx, err, fields)...)
}

func (l *zapLogger) Fatal(ctx context.Context, message string, err error, fields ...Field) {
	l.log.Fatal(message, l.zapFields(ctx, err, fields)...)
}

func (l *zapLogger) WithComponent(component string) Logger {
	return &zapLogger{log: l.log.With(zap.String("component", component))}
}

func (l *zapLogger) zapFields(ctx context.Context, err error, fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)
	if ctx != nil {
		if requestID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok && requestID != "" {
			out = append(out, zap.String("request_id", requestID))
		}
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
