package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EvaluationsTotal *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
	APIErrors        prometheus.Counter
	RequestSeconds   *prometheus.HistogramVec
	DawnComputations *prometheus.CounterVec
	ActiveWorkers    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		EvaluationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "eos_evaluations_total",
			Help: "Total number of dawn evaluation requests, by outcome.",
		}, []string{"status"}),
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "eos_geocode_cache_lookups_total",
			Help: "Total number of geocode cache lookups, by result.",
		}, []string{"result"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "eos_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eos_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		DawnComputations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "eos_dawn_computations_total",
			Help: "Total number of civil dawn computations, by strategy path and status.",
		}, []string{"path", "status"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "eos_active_workers",
			Help: "Current number of active workers processing batch evaluations.",
		}),
	}
}
