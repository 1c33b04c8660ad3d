// Package metrics exposes Prometheus instrumentation for the service layer.
//
// Collectors register on the default registry; an embedding program decides
// whether and how to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Outcome label values.
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Operations counts every service-layer operation by service, operation
// name, and outcome. "rejected" covers domain refusals (duplicate username,
// bad credentials, illegal status transition); "error" covers storage
// failures.
var Operations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tavolo",
		Name:      "operations_total",
		Help:      "Service operations by outcome.",
	},
	[]string{"service", "op", "outcome"},
)

// PollCycles counts background refresh cycles by outcome.
var PollCycles = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tavolo",
		Name:      "poll_cycles_total",
		Help:      "Background refresh cycles by outcome.",
	},
	[]string{"outcome"},
)
