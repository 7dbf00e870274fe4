package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	NormalizationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonecanon_normalizations_total",
			Help: "Phone normalizations by caller and outcome",
		},
		[]string{"source", "outcome"}, // api|importer|cli , ok|invalid|unknown_code
	)

	ContactsFlushedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "phonecanon_contacts_flushed_total",
			Help: "Contacts written by the importer batch writer",
		},
		[]string{"result"}, // ok|error
	)

	registerOnce sync.Once
)

// MustRegister registers the collectors once per process; later calls are no-ops.
func MustRegister(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(
			NormalizationsTotal,
			ContactsFlushedTotal,
		)
	})
}
