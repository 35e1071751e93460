package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics gerencia métricas relacionadas à API
type APIMetrics struct {
	requestCounter    *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	responseSize      *prometheus.SummaryVec
	activeRequests    *prometheus.GaugeVec
	errorsTotal       *prometheus.CounterVec
	rateLimited       *prometheus.CounterVec
	cacheHitRatio     *prometheus.GaugeVec
	punchesRegistered *prometheus.CounterVec
}

// NewAPIMetrics cria e registra métricas do prometheus no registrador informado.
// Com reg nil, usa o registrador padrão do prometheus.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &APIMetrics{
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ponto_requests_total",
				Help: "Total number of HTTP requests by path, method, and status code",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ponto_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		responseSize: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "ponto_response_size_bytes",
				Help:       "HTTP response size in bytes",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"path", "method"},
		),

		activeRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ponto_active_requests",
				Help: "Number of in-flight requests being processed",
			},
			[]string{"path", "method"},
		),

		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ponto_errors_total",
				Help: "Total number of errors by type",
			},
			[]string{"path", "method", "error_type"},
		),

		rateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ponto_rate_limited_requests_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path", "method"},
		),

		cacheHitRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ponto_cache_hit_ratio",
				Help: "Cache hit ratio (0.0 to 1.0)",
			},
			[]string{"cache_type"},
		),

		punchesRegistered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ponto_punches_registered_total",
				Help: "Total number of punches registered by type",
			},
			[]string{"tipo"},
		),
	}
}

// RequestStarted registra o início de uma requisição
func (m *APIMetrics) RequestStarted(path, method string) {
	m.activeRequests.WithLabelValues(path, method).Inc()
}

// RequestCompleted registra a conclusão de uma requisição
func (m *APIMetrics) RequestCompleted(path, method, status string, duration time.Duration, responseSize int) {
	m.requestCounter.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	m.responseSize.WithLabelValues(path, method).Observe(float64(responseSize))
	m.activeRequests.WithLabelValues(path, method).Dec()
}

// RequestError registra um erro de requisição
func (m *APIMetrics) RequestError(path, method, errorType string) {
	m.errorsTotal.WithLabelValues(path, method, errorType).Inc()
}

// RateLimitExceeded registra quando um limite de taxa é excedido
func (m *APIMetrics) RateLimitExceeded(path, method string) {
	m.rateLimited.WithLabelValues(path, method).Inc()
}

// UpdateCacheHitRatio atualiza a taxa de acertos do cache
func (m *APIMetrics) UpdateCacheHitRatio(cacheType string, hitRatio float64) {
	m.cacheHitRatio.WithLabelValues(cacheType).Set(hitRatio)
}

// PunchRegistered conta um ponto registrado com sucesso
func (m *APIMetrics) PunchRegistered(tipo string) {
	m.punchesRegistered.WithLabelValues(tipo).Inc()
}
