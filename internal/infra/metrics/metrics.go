package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics счетчики портала. Нулевой указатель допустим: все методы ничего не делают.
type Metrics struct {
	attempts        *prometheus.CounterVec
	integrityErrors prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	gatherer        prometheus.Gatherer
}

// NewMetrics создает метрики и регистрирует их в переданном реестре
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Переходы жизненного цикла попыток
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visionhub_attempt_events_total",
				Help: "Attempt lifecycle events",
			},
			[]string{"event"}, // event: created/resumed/viewed/saved/passed/failed
		),
		integrityErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "visionhub_integrity_anomalies_total",
				Help: "Answer pairs skipped because the option does not belong to the question",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visionhub_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "visionhub_http_request_duration_seconds",
				Help:    "Time spent processing HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.attempts, m.integrityErrors, m.httpRequests, m.httpDuration)
	return m
}

// AttemptEvent отмечает событие попытки
func (m *Metrics) AttemptEvent(event string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(event).Inc()
}

// IntegrityAnomaly отмечает пропущенную пару (вопрос, вариант)
func (m *Metrics) IntegrityAnomaly() {
	if m == nil {
		return
	}
	m.integrityErrors.Inc()
}

// ObserveRequest учитывает обработанный HTTP запрос
func (m *Metrics) ObserveRequest(route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, status).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
