package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global = zap.NewNop().Sugar()

// Init replaces the package logger. Called once from main before anything
// else logs.
func Init(level string, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	global = l.Sugar()
	return nil
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	global.Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	global.Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	global.Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	global.Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	global.Fatalf(format, args...)
}

func Fatal(ctx context.Context, err error) {
	if err == nil {
		return
	}
	global.Fatal(err.Error())
}
