// Package metrics records simulation activity with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "seasonsim"

// Recorder holds the simulation's Prometheus collectors. A nil *Recorder
// records nothing, so components can be built without metrics.
type Recorder struct {
	eventsDispatched *prometheus.CounterVec
	clockSteps       prometheus.Counter
	matchesSimulated prometheus.Counter
	seasonsStarted   prometheus.Counter
	queueDepth       prometheus.Gauge
}

// NewRecorder registers the simulation collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		eventsDispatched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "Events dispatched to the season lifecycle, by type.",
		}, []string{"type"}),
		clockSteps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_steps_total",
			Help:      "Increments the simulation clock advanced the calendar by.",
		}),
		matchesSimulated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_simulated_total",
			Help:      "Matches that received a result.",
		}),
		seasonsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seasons_started_total",
			Help:      "Season schedules built and installed.",
		}),
		queueDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Events waiting in the queue after the last clock step.",
		}),
	}
}

func (r *Recorder) EventDispatched(eventType string) {
	if r == nil {
		return
	}
	r.eventsDispatched.WithLabelValues(eventType).Inc()
}

func (r *Recorder) ClockStep() {
	if r == nil {
		return
	}
	r.clockSteps.Inc()
}

func (r *Recorder) MatchSimulated() {
	if r == nil {
		return
	}
	r.matchesSimulated.Inc()
}

func (r *Recorder) SeasonStarted() {
	if r == nil {
		return
	}
	r.seasonsStarted.Inc()
}

func (r *Recorder) QueueDepth(n int) {
	if r == nil {
		return
	}
	r.queueDepth.Set(float64(n))
}
