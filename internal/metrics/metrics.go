// Package metrics exports frame reader activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bft-labs/framepipe/internal/domain"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "framepipe").
	Namespace string

	// Registry receives the collectors (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

func (c Config) withDefaults() Config {
	if c.Namespace == "" {
		c.Namespace = "framepipe"
	}
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	return c
}

// Collector implements ports.Observer.
type Collector struct {
	frames       prometheus.Counter
	payloadBytes prometheus.Counter
	frameSize    prometheus.Histogram
	desync       *prometheus.CounterVec
	terminations prometheus.Counter
}

// NewCollector registers the reader metrics. It panics if they are already
// registered on the same registry.
func NewCollector(cfg Config) *Collector {
	cfg = cfg.withDefaults()
	factory := promauto.With(cfg.Registry)

	return &Collector{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "reader",
			Name:      "frames_total",
			Help:      "Complete frames received.",
		}),
		payloadBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "reader",
			Name:      "payload_bytes_total",
			Help:      "Payload bytes of complete frames.",
		}),
		frameSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "reader",
			Name:      "frame_size_bytes",
			Help:      "Payload size of complete frames.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
		desync: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "reader",
			Name:      "desync_total",
			Help:      "Header marker mismatches by marker.",
		}, []string{"marker"}),
		terminations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "reader",
			Name:      "terminations_total",
			Help:      "Reader loops that reached the exiting state.",
		}),
	}
}

// Observe records one reader event.
func (c *Collector) Observe(ev domain.Event) {
	switch ev.Kind {
	case domain.EventFrameReceived:
		c.frames.Inc()
		c.payloadBytes.Add(float64(ev.Size))
		c.frameSize.Observe(float64(ev.Size))
	case domain.EventDesync:
		c.desync.WithLabelValues(ev.Desync.Marker()).Inc()
	case domain.EventTerminated:
		c.terminations.Inc()
	}
}
