// Package metrics exposes Prometheus collectors for a rendering run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sink labels for dispatch failures.
const (
	SinkVideo = "video"
	SinkStill = "still"
)

// Metrics groups the run collectors. A nil *Metrics records nothing.
type Metrics struct {
	generations      prometheus.Counter
	generationTime   prometheus.Histogram
	framesEncoded    prometheus.Counter
	stillsSaved      prometheus.Counter
	dispatchFailures *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		generations: f.NewCounter(prometheus.CounterOpts{
			Name: "lifereel_generations_total",
			Help: "Generations computed by the engine.",
		}),
		generationTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifereel_generation_seconds",
			Help:    "Time to compute one generation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~0.8s
		}),
		framesEncoded: f.NewCounter(prometheus.CounterOpts{
			Name: "lifereel_frames_encoded_total",
			Help: "Frames appended to the video stream.",
		}),
		stillsSaved: f.NewCounter(prometheus.CounterOpts{
			Name: "lifereel_stills_saved_total",
			Help: "Frames exported as still images.",
		}),
		dispatchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifereel_dispatch_failures_total",
			Help: "Frame dispatch failures by sink.",
		}, []string{"sink"}),
	}
}

// ObserveGeneration records one computed generation.
func (m *Metrics) ObserveGeneration(d time.Duration) {
	if m == nil {
		return
	}
	m.generations.Inc()
	m.generationTime.Observe(d.Seconds())
}

// FrameEncoded records a frame appended to the video.
func (m *Metrics) FrameEncoded() {
	if m == nil {
		return
	}
	m.framesEncoded.Inc()
}

// StillSaved records an exported still.
func (m *Metrics) StillSaved() {
	if m == nil {
		return
	}
	m.stillsSaved.Inc()
}

// DispatchFailed records a failed dispatch to sink.
func (m *Metrics) DispatchFailed(sink string) {
	if m == nil {
		return
	}
	m.dispatchFailures.WithLabelValues(sink).Inc()
}
