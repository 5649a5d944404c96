package main

import (
	"context"
	"os/signal"
	"syscall"

	"p2pquotes-service/internal/bootstrap"
	"p2pquotes-service/internal/config"
	"p2pquotes-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	cfg := config.Load()
	if err := logx.Init(cfg); err != nil {
		panic(err)
	}
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, cleanup, err := bootstrap.InitWorkerApp(ctx, cfg, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()
	if err := run(ctx); err != nil {
		log.Error("worker exited", zap.Error(err))
	}
}
