// Package metrics exposes a small Prometheus registry for one
// percolation run: clique enumeration counters, percolation-level
// timing, and bloom-filter occupancy, grounded on the teacher's
// pkg/metrics registry-of-gauges-and-histograms pattern, narrowed down
// to this pipeline's own concerns.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric this pipeline exports.
type Registry struct {
	CliquesEnumeratedTotal   prometheus.Counter
	CliqueSizeHistogram      prometheus.Histogram
	VerticesProcessedTotal   prometheus.Counter
	PercolationLevelDuration *prometheus.HistogramVec
	CommunitiesFoundTotal    *prometheus.CounterVec
	BloomBitsOccupied        *prometheus.GaugeVec
	BloomOccupancyRatio      *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a fresh registry with every metric initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.CliquesEnumeratedTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "percolate_cliques_enumerated_total",
		Help: "Total number of maximal cliques found during enumeration.",
	})
	r.CliqueSizeHistogram = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "percolate_clique_size",
		Help:    "Distribution of maximal clique sizes.",
		Buckets: prometheus.LinearBuckets(3, 2, 20),
	})
	r.VerticesProcessedTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "percolate_vertices_processed_total",
		Help: "Total number of vertices seeded for clique enumeration.",
	})
	r.PercolationLevelDuration = promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "percolate_level_duration_seconds",
		Help:    "Wall time spent percolating communities at each k.",
		Buckets: prometheus.DefBuckets,
	}, []string{"k"})
	r.CommunitiesFoundTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "percolate_communities_found_total",
		Help: "Number of communities found at each percolation level.",
	}, []string{"k"})
	r.BloomBitsOccupied = promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
		Name: "percolate_bloom_bits_occupied",
		Help: "Number of bloom filter bits set at each percolation level.",
	}, []string{"k"})
	r.BloomOccupancyRatio = promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
		Name: "percolate_bloom_occupancy_ratio",
		Help: "Fraction of bloom filter bits set at each percolation level.",
	}, []string{"k"})

	return r
}

// PrometheusRegistry returns the underlying registry, for ServeHTTP wiring.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// ServeUntil starts an HTTP server exposing /metrics on addr and shuts
// it down when ctx is cancelled. It runs in the caller's goroutine and
// only returns once the server has stopped.
func (r *Registry) ServeUntil(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
