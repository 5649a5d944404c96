package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service collectors. It satisfies httpx.Observer and
// application.CacheObserver.
type Metrics struct {
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamDurationSeconds *prometheus.HistogramVec
	RateCacheLookupsTotal   *prometheus.CounterVec
	SnapshotsTotal          *prometheus.CounterVec

	RefreshLastRun       prometheus.Gauge
	RefreshLastDuration  prometheus.Gauge
	RefreshFailuresTotal prometheus.Counter
}

// New registers collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "p2pquotes_upstream_requests_total",
				Help: "Upstream request attempts per source and outcome",
			},
			[]string{"source", "outcome"},
		),
		UpstreamDurationSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "p2pquotes_upstream_request_duration_seconds",
				Help:    "Upstream request duration in seconds per source",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		RateCacheLookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "p2pquotes_rate_cache_lookups_total",
				Help: "Rate cache lookups by result",
			},
			[]string{"result"},
		),
		SnapshotsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "p2pquotes_snapshots_total",
				Help: "Served /p2p snapshots by status",
			},
			[]string{"status"},
		),
		RefreshLastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "p2pquotes_rate_refresh_last_run_timestamp",
			Help: "Unix timestamp of the last completed rate refresh",
		}),
		RefreshLastDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "p2pquotes_rate_refresh_last_duration_seconds",
			Help: "Duration of the last rate refresh",
		}),
		RefreshFailuresTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "p2pquotes_rate_refresh_failures_total",
			Help: "Total number of failed rate refreshes",
		}),
	}
}

func (m *Metrics) ObserveUpstream(source, outcome string, took time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
	m.UpstreamDurationSeconds.WithLabelValues(source).Observe(took.Seconds())
}

func (m *Metrics) CacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.RateCacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Snapshot(ok bool) {
	status := "error"
	if ok {
		status = "ok"
	}
	m.SnapshotsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) Refreshed(startedAt time.Time, err error) {
	m.RefreshLastDuration.Set(time.Since(startedAt).Seconds())
	m.RefreshLastRun.Set(float64(time.Now().Unix()))
	if err != nil {
		m.RefreshFailuresTotal.Inc()
	}
}
