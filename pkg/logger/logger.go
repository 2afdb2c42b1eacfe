package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger atomic.Pointer[Logger]

// Logger wraps zap.SugaredLogger. Callers go through the package helpers;
// the caller skip assumes exactly one helper frame.
type Logger struct {
	*zap.SugaredLogger
}

// Init initializes the global logger
func Init(level string, env string) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return err
	}

	Set(logger)
	return nil
}

// Set replaces the global logger. Tests use it with zap.NewNop.
func Set(l *zap.Logger) {
	globalLogger.Store(&Logger{SugaredLogger: l.WithOptions(zap.AddCallerSkip(1)).Sugar()})
}

// Get returns the global logger, installing a development logger when
// neither Init nor Set has run yet.
func Get() *Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	dev, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	globalLogger.CompareAndSwap(nil, &Logger{SugaredLogger: dev.Sugar()})
	return globalLogger.Load()
}

// Convenience functions that use the global logger
func Info(args ...interface{})                    { Get().Info(args...) }
func Infof(template string, args ...interface{})  { Get().Infof(template, args...) }
func Infow(msg string, kv ...interface{})         { Get().Infow(msg, kv...) }
func Errorf(template string, args ...interface{}) { Get().Errorf(template, args...) }
func Fatalf(template string, args ...interface{}) { Get().Fatalf(template, args...) }

// Sync flushes any buffered log entries
func Sync() error {
	if l := globalLogger.Load(); l != nil {
		return l.Sync()
	}
	return nil
}
