package metrics

import (
	"strconv"

	"github.com/dd0wney/percolate/pkg/cliques"
	"github.com/dd0wney/percolate/pkg/percolation"
)

// PercolationRecorder adapts a Registry to percolation.Recorder and
// cliques.VertexObserver.
type PercolationRecorder struct {
	registry *Registry
}

// NewPercolationRecorder wraps registry for use as a percolation.Engine recorder.
func NewPercolationRecorder(registry *Registry) *PercolationRecorder {
	return &PercolationRecorder{registry: registry}
}

var (
	_ percolation.Recorder   = (*PercolationRecorder)(nil)
	_ cliques.VertexObserver = (*PercolationRecorder)(nil)
)

func (p *PercolationRecorder) ObserveCliqueSize(size int) {
	p.registry.CliqueSizeHistogram.Observe(float64(size))
}

func (p *PercolationRecorder) ObserveLevelDuration(k int, seconds float64) {
	p.registry.PercolationLevelDuration.WithLabelValues(strconv.Itoa(k)).Observe(seconds)
}

func (p *PercolationRecorder) SetCommunitiesFound(k int, n int) {
	p.registry.CommunitiesFoundTotal.WithLabelValues(strconv.Itoa(k)).Add(float64(n))
}

func (p *PercolationRecorder) SetBloomOccupancy(k int, ratio float64) {
	p.registry.BloomOccupancyRatio.WithLabelValues(strconv.Itoa(k)).Set(ratio)
}

// IncCliquesEnumerated bumps the enumeration counter, called once per
// clique emitted by pkg/cliques.Enumerate.
func (p *PercolationRecorder) IncCliquesEnumerated() {
	p.registry.CliquesEnumeratedTotal.Inc()
}

// IncVerticesProcessed bumps the per-seed-vertex counter.
func (p *PercolationRecorder) IncVerticesProcessed() {
	p.registry.VerticesProcessedTotal.Inc()
}

// ObserveVertex implements cliques.VertexObserver, called once per
// seed vertex in Enumerate's outer loop.
func (p *PercolationRecorder) ObserveVertex(v int32) {
	p.IncVerticesProcessed()
}
