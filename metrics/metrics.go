// Package metrics holds the prometheus collectors of the operation and network services.
package metrics

import (
	// External Packages
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "netops"

var (
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_transitions_total",
		Help:      "Operation transitions confirmed by the store.",
	}, []string{"kind", "from", "to"})

	TransitionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_transition_errors_total",
		Help:      "Transitions refused locally or by the store, by error kind.",
	}, []string{"kind"})

	OrphansDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downline_orphans_dropped_total",
		Help:      "Downline records whose referrer was not found at the level above.",
	})

	DeadLettered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlements_dead_lettered_total",
		Help:      "Settlement records sent to the dead letter queue.",
	})
)
