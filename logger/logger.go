// Package logger exposes a process-wide zap logger so call sites stay terse.
package logger

import "go.uber.org/zap"

var log *zap.Logger

func init() {
	log, _ = zap.NewProduction(zap.AddCallerSkip(1))
}

// SetLogger replaces the process logger. Tests use zap.NewNop().
func SetLogger(l *zap.Logger) {
	log = l
}

func Get() *zap.Logger {
	return log
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}
