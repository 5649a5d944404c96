package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"p2pquotes-service/internal/bootstrap"
	"p2pquotes-service/internal/config"
	infracfg "p2pquotes-service/internal/infrastructure/config"
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
	logger := logx.L()
	defer func() { _ = logger.Sync() }()
	addr := ":" + cfg.Port

	api, cleanup, err := bootstrap.InitAPI(context.Background(), cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()

	server := &http.Server{
		Addr:              addr,
		Handler:           api.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server started",
			zap.String("addr", addr),
			zap.String("primary", cfg.PrimaryFiat),
			zap.String("rate_store", cfg.RateStore),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infracfg.DefaultShutdownTimeout)
	defer shCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
