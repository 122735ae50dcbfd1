// Package metrics provides Prometheus collectors for the control channel.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Channel holds the collectors updated by a controller.
type Channel struct {
	Pushed    *prometheus.CounterVec
	Written   *prometheus.CounterVec
	Bytes     prometheus.Counter
	Discarded prometheus.Counter
	Failures  *prometheus.CounterVec
	Depth     prometheus.Gauge
}

// New creates the channel collectors and registers them on reg. A nil reg
// leaves them unregistered, which is what tests use.
func New(reg prometheus.Registerer) *Channel {
	c := &Channel{
		Pushed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deskcontrol_events_pushed_total",
			Help: "Total number of control events accepted by the queue, by kind.",
		}, []string{"kind"}),
		Written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deskcontrol_events_written_total",
			Help: "Total number of control events written to the peer socket, by kind.",
		}, []string{"kind"}),
		Bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskcontrol_bytes_written_total",
			Help: "Total number of serialized bytes written to the peer socket.",
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deskcontrol_events_discarded_total",
			Help: "Total number of queued control events discarded on stop, failure or teardown.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deskcontrol_worker_failures_total",
			Help: "Total number of fatal worker terminations, by stage (serialize/write).",
		}, []string{"stage"}),
		Depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "deskcontrol_queue_depth",
			Help: "Current number of control events waiting in the queue.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.Pushed, c.Written, c.Bytes, c.Discarded, c.Failures, c.Depth)
	}
	return c
}

// IncFailure records a fatal worker termination at the given stage.
func (c *Channel) IncFailure(stage string) {
	if c == nil {
		return
	}
	if stage == "" {
		stage = "unknown"
	}
	c.Failures.WithLabelValues(stage).Inc()
}

// ObservePush records an accepted event and the resulting queue depth.
func (c *Channel) ObservePush(kind string, depth int) {
	if c == nil {
		return
	}
	c.Pushed.WithLabelValues(kind).Inc()
	c.Depth.Set(float64(depth))
}

// ObserveWrite records a delivered event of n bytes.
func (c *Channel) ObserveWrite(kind string, n int) {
	if c == nil {
		return
	}
	c.Written.WithLabelValues(kind).Inc()
	c.Bytes.Add(float64(n))
}

// ObserveDepth records the current queue depth.
func (c *Channel) ObserveDepth(depth int) {
	if c == nil {
		return
	}
	c.Depth.Set(float64(depth))
}

// AddDiscarded records events dropped without being written.
func (c *Channel) AddDiscarded(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.Discarded.Add(float64(n))
}
