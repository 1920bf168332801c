package behavior

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BehaviorEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_events_total",
			Help: "Count of recorded behavior events by action.",
		},
		[]string{"action"},
	)

	StateWriteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "behavior_state_write_failures_total",
			Help: "Count of swallowed durable-state write failures by key kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		BehaviorEventsTotal,
		StateWriteFailuresTotal,
	)
}
