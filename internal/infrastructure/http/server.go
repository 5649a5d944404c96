package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"p2pquotes-service/internal/application"
	"p2pquotes-service/internal/domain"
	"p2pquotes-service/internal/infrastructure/logx"

	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	msgFetchFailed = "Data fetch failed"
	msgInvalidFiat = "invalid fiat"
)

// Aggregator builds the combined quote table for a fiat; empty means the configured primary.
type Aggregator interface {
	Snapshot(ctx context.Context, fiat string) (domain.Snapshot, error)
}

// SnapshotObserver is told whether each /p2p request succeeded.
type SnapshotObserver interface {
	Snapshot(ok bool)
}

type Server struct {
	svc      Aggregator
	ping     func(context.Context) error
	observer SnapshotObserver
	metrics  http.Handler
}

var _ Aggregator = (*application.AggregatorService)(nil)

func NewServer(svc Aggregator) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the dependency probe used by /readyz.
func (s *Server) SetReadyCheck(fn func(context.Context) error) { s.ping = fn }

func (s *Server) SetSnapshotObserver(o SnapshotObserver) { s.observer = o }

// SetMetricsHandler overrides the /metrics handler; the default serves the global registry.
func (s *Server) SetMetricsHandler(h http.Handler) { s.metrics = h }

func (s *Server) metricsHandler() http.Handler {
	if s.metrics != nil {
		return s.metrics
	}
	return promhttp.Handler()
}

// GetP2P serves GET /p2p[?fiat=XXX]. Upstream failures are logged and reported
// with a fixed message.
func (s *Server) GetP2P(w http.ResponseWriter, r *http.Request) {
	var fiat string
	if err := runtime.BindQueryParameter("form", true, false, "fiat", r.URL.Query(), &fiat); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidFiat)
		return
	}

	snap, err := s.svc.Snapshot(r.Context(), fiat)
	if err != nil {
		if errors.Is(err, application.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, msgInvalidFiat)
			return
		}
		s.observe(false)
		logx.FromContext(r.Context()).Error("p2p.fetch_failed",
			zap.String("fiat", fiat),
			zap.String("trace_id", getTraceIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	s.observe(true)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) observe(ok bool) {
	if s.observer != nil {
		s.observer.Snapshot(ok)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
