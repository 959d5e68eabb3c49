package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/yungbote/planbridge-backend/internal/platform/logger"
)

const namespace = "planbridge"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	feedbackIngest *prometheus.CounterVec
	planIngest     *prometheus.CounterVec
	planNodes      *prometheus.CounterVec

	pgStats *prometheus.GaugeVec
}

// NewMetrics builds a collector set on its own registry, so several
// instances can coexist in tests.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency in seconds by method/route/status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "In-flight API requests.",
		}),
		feedbackIngest: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_feedback_total",
			Help:      "Feedback submissions by result.",
		}, []string{"result"}),
		planIngest: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_plan_total",
			Help:      "Plan submissions by result.",
		}, []string{"result"}),
		planNodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_plan_nodes_total",
			Help:      "Sujet and action rows written by committed plans.",
		}, []string{"kind"}),
		pgStats: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_pool",
			Help:      "database/sql pool statistics.",
		}, []string{"stat"}),
	}
}

// Handler serves the Prometheus exposition for this instance.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unmatched"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncFeedback(result string) {
	if m == nil {
		return
	}
	m.feedbackIngest.WithLabelValues(result).Inc()
}

func (m *Metrics) IncPlan(result string) {
	if m == nil {
		return
	}
	m.planIngest.WithLabelValues(result).Inc()
}

func (m *Metrics) AddPlanNodes(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.planNodes.WithLabelValues(kind).Add(float64(n))
}

// StartPostgresCollector samples pool stats every interval until ctx ends.
func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.samplePool(log, db)
			}
		}
	}()
}

func (m *Metrics) samplePool(log *logger.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: pool stats unavailable", "error", err)
		}
		return
	}
	stats := sqlDB.Stats()
	m.pgStats.WithLabelValues("open_connections").Set(float64(stats.OpenConnections))
	m.pgStats.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.pgStats.WithLabelValues("idle").Set(float64(stats.Idle))
	m.pgStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
	m.pgStats.WithLabelValues("wait_duration_seconds").Set(stats.WaitDuration.Seconds())
	m.pgStats.WithLabelValues("max_open_connections").Set(float64(stats.MaxOpenConnections))
}
