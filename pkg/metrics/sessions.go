package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics tracks shopper sessions and the cart activity inside them.
type SessionMetrics struct {
	active        prometheus.Gauge
	ended         *prometheus.CounterVec
	cartEvents    *prometheus.CounterVec
	sweepDuration prometheus.Histogram
}

// NewSessionMetrics registers the session metrics on the provided registerer.
func NewSessionMetrics(reg prometheus.Registerer) *SessionMetrics {
	if reg == nil {
		return &SessionMetrics{}
	}
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_sessions_active",
		Help: "Sessions currently held in memory.",
	})
	ended := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_sessions_ended_total",
		Help: "Sessions removed from the registry, by reason.",
	}, []string{"reason"})
	cartEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_events_total",
		Help: "Applied cart mutations, by kind.",
	}, []string{"kind"})
	sweepDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_session_sweep_duration_seconds",
		Help:    "Duration of idle session sweeps in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(active, ended, cartEvents, sweepDuration)
	return &SessionMetrics{
		active:        active,
		ended:         ended,
		cartEvents:    cartEvents,
		sweepDuration: sweepDuration,
	}
}

func (s *SessionMetrics) SessionStarted() {
	if s == nil || s.active == nil {
		return
	}
	s.active.Inc()
}

func (s *SessionMetrics) SessionEnded(reason string) {
	if s == nil || s.active == nil {
		return
	}
	s.active.Dec()
	s.ended.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (s *SessionMetrics) IncCartEvent(kind string) {
	if s == nil || s.cartEvents == nil {
		return
	}
	s.cartEvents.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (s *SessionMetrics) ObserveSweep(duration time.Duration) {
	if s == nil || s.sweepDuration == nil {
		return
	}
	s.sweepDuration.Observe(duration.Seconds())
}
