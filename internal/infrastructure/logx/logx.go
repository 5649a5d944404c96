package logx

import (
	"context"
	"strings"
	"sync/atomic"

	"p2pquotes-service/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var logger atomic.Pointer[zap.Logger]

func init() {
	l, err := build(config.Load().LogLevel)
	if err != nil {
		panic(err)
	}
	logger.Store(l)
}

func build(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(level)))
	}
	return zapCfg.Build(zap.AddCaller())
}

// Init rebuilds the package logger from cfg. Call it from main once .env has
// been loaded; package init only sees the process environment.
func Init(cfg config.Config) error {
	l, err := build(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Store(l)
	return nil
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger.Load()
}

// Into returns a context carrying l for FromContext.
func Into(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger, or the package logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return L()
}
