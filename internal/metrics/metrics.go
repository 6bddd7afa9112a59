// Package metrics provides the centralized Prometheus registry for the
// fair-odds engine and its surrounding services.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "computation_passes_total",
		Help:      "Total number of completed computation passes",
	})
	RecordsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "records_processed_total",
		Help:      "Total number of feed records processed",
	})
	PairsFound = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "pairs_found_total",
		Help:      "Total number of opposite-side pairings discovered",
	})
	PositiveEVFound = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "positive_ev_total",
		Help:      "Total number of groups whose best book EV was positive",
	})
	StrategyUsed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "strategy_used_total",
		Help:      "Computation strategy chosen per group",
	}, []string{"strategy"})
	FeedFetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fairline",
		Name:      "feed_fetch_errors_total",
		Help:      "Total number of failed odds feed fetches",
	})
)

// Gauge metrics
var (
	LastPassRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fairline",
		Name:      "last_pass_records",
		Help:      "Number of records in the most recent pass",
	})
	LastPassBestEVPercent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fairline",
		Name:      "last_pass_best_ev_percent",
		Help:      "Best EV percentage found in the most recent pass",
	})
)

// Histogram metrics
var (
	PassDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fairline",
		Name:      "pass_duration_seconds",
		Help:      "Duration of full computation passes in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	FeedFetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fairline",
		Name:      "feed_fetch_latency_seconds",
		Help:      "Latency of odds feed fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PassesTotal)
		registry.MustRegister(RecordsProcessed)
		registry.MustRegister(PairsFound)
		registry.MustRegister(PositiveEVFound)
		registry.MustRegister(StrategyUsed)
		registry.MustRegister(FeedFetchErrors)

		registry.MustRegister(LastPassRecords)
		registry.MustRegister(LastPassBestEVPercent)

		registry.MustRegister(PassDuration)
		registry.MustRegister(FeedFetchLatency)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}
