package metrics

import (
	"github.com/jusunglee/mapuipa/internal/transliteration"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapuipa_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mapuipa_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapuipa_rate_limit_hits_total",
		Help: "Total rate limit rejections by surface",
	}, []string{"surface"})
)

// Transliteration metrics, shared by every surface.
var (
	TransliterationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapuipa_transliterations_total",
		Help: "Transliterations by surface (web, bot) and IPA mode (full, simple)",
	}, []string{"surface", "mode"})

	InputRunes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mapuipa_input_runes",
		Help:    "Size of transliterated input in runes",
		Buckets: prometheus.ExponentialBuckets(8, 4, 8),
	}, []string{"surface"})

	InvalidConfigurations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mapuipa_invalid_configurations_total",
		Help: "Requests rejected for an out-of-set variant, by surface",
	}, []string{"surface"})

	TableCacheBuilds = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mapuipa_table_cache_builds",
		Help: "Effective rule tables built by the shared cache",
	}, func() float64 {
		return float64(transliteration.DefaultCache.Builds())
	})
)

// Storage metrics.
var (
	TranscriptionsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mapuipa_transcriptions_stored_total",
		Help: "Transcriptions saved to the repository",
	})

	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapuipa_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapuipa_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mapuipa_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})
)

// ObserveTransliteration records one conversion.
func ObserveTransliteration(surface string, simple bool, runes int) {
	mode := "full"
	if simple {
		mode = "simple"
	}
	TransliterationsTotal.WithLabelValues(surface, mode).Inc()
	InputRunes.WithLabelValues(surface).Observe(float64(runes))
}
