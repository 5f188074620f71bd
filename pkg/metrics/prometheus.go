package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Prometheus struct {
	locationUpdates *prometheus.CounterVec
	driversRemoved  prometheus.Counter
	nearestResults  prometheus.Histogram
	useCaseTotal    *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	httpDuration    *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
}

func NewPrometheusMetrics(reg prometheus.Registerer, serviceName string) *Prometheus {
	m := &Prometheus{
		locationUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "taxi24_location_updates_total",
			Help:        "Total driver location upserts.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		driversRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "taxi24_drivers_removed_total",
			Help:        "Total drivers removed from the location index.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		nearestResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "taxi24_nearest_result_count",
			Help:        "Number of drivers returned per proximity query.",
			Buckets:     []float64{0, 1, 2, 3, 5, 10, 25},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),
		useCaseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_usecase_total",
			Help:        "Total number of Use Case executions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_usecase_duration_seconds",
			Help:        "Use Case execution latency.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "Duration of HTTP requests.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "taxi24_store_errors_total",
			Help:        "Total backing-store failures by operation.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.locationUpdates,
		m.driversRemoved,
		m.nearestResults,
		m.useCaseTotal,
		m.useCaseDuration,
		m.httpDuration,
		m.storeErrors,
	)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (p *Prometheus) RecordLocationUpdate(status string) {
	p.locationUpdates.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordDriverRemoved() {
	p.driversRemoved.Inc()
}

func (p *Prometheus) ObserveNearestResultCount(count int) {
	p.nearestResults.Observe(float64(count))
}

func (p *Prometheus) RecordUseCaseExecution(useCase string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.useCaseTotal.WithLabelValues(useCase, status).Inc()
	p.useCaseDuration.WithLabelValues(useCase, status).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}

func (p *Prometheus) IncStoreError(operation string) {
	p.storeErrors.WithLabelValues(operation).Inc()
}
