package observability

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/emolit-backend/internal/platform/envutil"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

// Metrics is the process-wide Prometheus surface. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	analyses        *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	backendRequests *prometheus.CounterVec

	xpAwarded         *prometheus.CounterVec
	activities        *prometheus.CounterVec
	progressConflicts prometheus.Counter
	quizAnswers       *prometheus.CounterVec

	redisUp prometheus.Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", true)
}

func Current() *Metrics {
	return instance
}

// Init builds the global metrics once.
func Init(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

// New builds an isolated metrics set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emolit_api_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emolit_api_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "emolit_api_inflight_requests",
			Help: "HTTP requests currently being served.",
		}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emolit_analyses_total",
			Help: "Completed emotion analyses by source and risk level.",
		}, []string{"source", "risk"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emolit_classifier_backend_duration_seconds",
			Help:    "Classifier backend call latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"backend"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emolit_classifier_backend_requests_total",
			Help: "Classifier backend calls by outcome.",
		}, []string{"backend", "status"}),
		xpAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emolit_xp_awarded_total",
			Help: "Experience points credited by activity kind.",
		}, []string{"kind"}),
		activities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emolit_activities_total",
			Help: "Recorded progression activities by kind.",
		}, []string{"kind"}),
		progressConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "emolit_progress_conflicts_total",
			Help: "Optimistic concurrency conflicts on the progression ledger.",
		}),
		quizAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emolit_quiz_answers_total",
			Help: "Validated quiz answers.",
		}, []string{"correct"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "emolit_redis_up",
			Help: "1 when the last Redis ping succeeded.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.analyses, m.backendLatency, m.backendRequests,
		m.xpAwarded, m.activities, m.progressConflicts, m.quizAnswers,
		m.redisUp,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAnalysis(source, risk string) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(source, risk).Inc()
}

func (m *Metrics) ObserveBackend(backend string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
	}
	m.backendLatency.WithLabelValues(backend).Observe(d.Seconds())
	m.backendRequests.WithLabelValues(backend, status).Inc()
}

func (m *Metrics) ObserveActivity(kind string, xp int64) {
	if m == nil {
		return
	}
	m.activities.WithLabelValues(kind).Inc()
	if xp > 0 {
		m.xpAwarded.WithLabelValues(kind).Add(float64(xp))
	}
}

func (m *Metrics) IncProgressConflict() {
	if m != nil {
		m.progressConflicts.Inc()
	}
}

func (m *Metrics) ObserveQuizAnswer(correct bool) {
	if m == nil {
		return
	}
	label := "false"
	if correct {
		label = "true"
	}
	m.quizAnswers.WithLabelValues(label).Inc()
}

// RegisterDBStats exports connection pool stats for db.
func (m *Metrics) RegisterDBStats(db *sql.DB, name string) error {
	if m == nil || db == nil {
		return nil
	}
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// StartRedisCollector pings addr on an interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil || addr == "" {
		return
	}
	interval := envutil.Duration("METRICS_SCRAPE_INTERVAL", 15*time.Second)
	client := redis.NewClient(&redis.Options{Addr: addr})
	go func() {
		defer client.Close()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := client.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				m.redisUp.Set(0)
				if log != nil {
					log.Debug("redis ping failed", "error", err)
				}
			} else {
				m.redisUp.Set(1)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}
