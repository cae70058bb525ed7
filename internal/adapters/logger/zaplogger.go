package logger

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements the ports.Logger interface on top of zap's structured
// production logger.
type ZapLogger struct {
	l *zap.Logger
}

// NewZapLogger creates a zap-backed logger at the given level.
func NewZapLogger(level LogLevel) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{l: l}, nil
}

// Sync flushes buffered log entries; call on shutdown.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}

// Debug logs a message at Debug level.
func (z *ZapLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	z.l.Debug(msg, zapFields(fields)...)
}

// Info logs a message at Info level.
func (z *ZapLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	z.l.Info(msg, zapFields(fields)...)
}

// Warn logs a message at Warning level.
func (z *ZapLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	z.l.Warn(msg, zapFields(fields)...)
}

// Error logs an error message at Error level.
func (z *ZapLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	z.l.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields []map[string]interface{}) []zap.Field {
	if len(fields) == 0 || len(fields[0]) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields[0]))
	for k := range fields[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[0][k]))
	}
	return zf
}
