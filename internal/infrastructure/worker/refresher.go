package worker

import (
	"context"
	"fmt"
	"time"

	"p2pquotes-service/internal/application"

	"go.uber.org/zap"
)

var _ application.Worker = (*RateRefresher)(nil)

// RefreshObserver records the outcome of each refresh.
type RefreshObserver interface {
	Refreshed(startedAt time.Time, err error)
}

// RateRefresher keeps the rate cache for Base warm by refetching it every
// Every, starting immediately.
type RateRefresher struct {
	Cache    application.RefreshableCache
	Base     string
	Targets  []string
	Every    time.Duration
	Timeout  time.Duration
	Log      *zap.Logger
	Observer RefreshObserver
}

func (w *RateRefresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Every <= 0 {
		w.Every = 55 * time.Minute
	}
	if w.Timeout <= 0 {
		w.Timeout = application.DefaultCallTimeout
	}

	t := time.NewTicker(w.Every)
	defer t.Stop()

	log.Info("rate_refresher.started", zap.String("base", w.Base), zap.Duration("every", w.Every))
	w.tick(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("rate_refresher.stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *RateRefresher) tick(ctx context.Context, log *zap.Logger) {
	started := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			log.Warn("rate_refresher.panic", zap.Any("r", r))
		}
		if w.Observer != nil {
			w.Observer.Refreshed(started, err)
		}
	}()

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	rates, err := w.Cache.Refresh(c, w.Base, w.Targets)
	if err != nil {
		log.Warn("rate_refresher.failed", zap.String("base", w.Base), zap.Error(err))
		return
	}
	log.Info("rate_refresher.done", zap.String("base", w.Base), zap.Int("rates", len(rates)), zap.Duration("took", time.Since(started)))
}
