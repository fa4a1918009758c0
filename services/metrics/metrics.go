package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sjsage522/reviewworker/logger"
)

var (
	Pages = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviewworker", Name: "pages_total", Help: "Listing pages fetched."},
		[]string{"outcome"}, // outcome: fragments|empty|failed
	)
	Reviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviewworker", Name: "reviews_total", Help: "Extracted reviews by store result."},
		[]string{"result"}, // result: new|duplicate|dropped
	)
	FetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviewworker", Name: "fetch_duration_seconds",
			Help:    "Listing page fetch duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviewworker", Name: "runs_total", Help: "Completed harvest runs."},
		[]string{"stop_reason"},
	)
)

// InitRegistry returns a registry holding the worker's collectors
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(Pages, Reviews, FetchLatency, Runs)
	return reg
}

// Handler exposes reg in the Prometheus text format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve starts the metrics endpoint in the background.
// An empty addr leaves it disabled.
func Serve(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(reg))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log := logger.ForHarvester()
		log.Info().Str("addr", addr).Msg("Metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Metrics server failed")
		}
	}()
	return srv
}

func ObserveFetch(status string, dur time.Duration) {
	FetchLatency.WithLabelValues(status).Observe(dur.Seconds())
}

func ObservePage(outcome string) {
	Pages.WithLabelValues(outcome).Inc()
}

func ObserveReview(result string) {
	Reviews.WithLabelValues(result).Inc()
}

func ObserveRun(stopReason string) {
	Runs.WithLabelValues(stopReason).Inc()
}
