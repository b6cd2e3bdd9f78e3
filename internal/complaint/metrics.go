package complaint

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// operations counts complaint operations by outcome.
var operations = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "complaint_operations_total",
		Help: "Number of complaint operations, differentiated by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

func observeOperation(operation, outcome string) {
	operations.WithLabelValues(operation, outcome).Inc()
}
