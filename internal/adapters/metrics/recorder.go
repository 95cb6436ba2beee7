// Package metrics exposes cycle measurements as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "curvemark"

// Recorder implements ports.CycleRecorder.
type Recorder struct {
	cycles          prometheus.Counter
	flaggedPoints   prometheus.Counter
	degeneratePoses prometheus.Counter
	rejectedPaths   prometheus.Counter
	publishFailures *prometheus.CounterVec

	lastPoses   prometheus.Gauge
	lastFlagged prometheus.Gauge

	cycleDuration prometheus.Histogram
}

// NewRecorder registers the metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		cycles: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Paths analysed and published",
		}),
		flaggedPoints: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flagged_points_total",
			Help:      "Points whose curvature exceeded the threshold",
		}),
		degeneratePoses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degenerate_poses_total",
			Help:      "Interior poses skipped because an adjacent segment had zero length",
		}),
		rejectedPaths: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_paths_total",
			Help:      "Incoming path messages that could not be decoded",
		}),
		publishFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Failed marker publishes per publisher",
		}, []string{"publisher"}),
		lastPoses: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_path_poses",
			Help:      "Number of poses in the most recent path",
		}),
		lastFlagged: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_path_flagged_points",
			Help:      "Number of flagged points in the most recent path",
		}),
		cycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Time to analyse a path and publish its markers",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 100us .. ~0.8s
		}),
	}
}

// ObserveCycle records one completed cycle.
func (r *Recorder) ObserveCycle(poses, flagged, degenerate int, d time.Duration) {
	r.cycles.Inc()
	r.flaggedPoints.Add(float64(flagged))
	r.degeneratePoses.Add(float64(degenerate))
	r.lastPoses.Set(float64(poses))
	r.lastFlagged.Set(float64(flagged))
	r.cycleDuration.Observe(d.Seconds())
}

// PublishFailed records a failed publish.
func (r *Recorder) PublishFailed(publisher string) {
	r.publishFailures.WithLabelValues(publisher).Inc()
}

// PathRejected records an undecodable path message.
func (r *Recorder) PathRejected() {
	r.rejectedPaths.Inc()
}
