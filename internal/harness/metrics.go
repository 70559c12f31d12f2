package harness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of steane_harness_trials_total.
const (
	LabelPassed = "passed"
	LabelFailed = "failed"
	LabelError  = "error"
)

type metrics struct {
	// trials counts evaluated trials. Labels: outcome (passed, failed, error)
	trials *prometheus.CounterVec
	// weight tracks the weight of the correction checked against the readout.
	weight prometheus.Histogram
	// open counts histories that end with an unresolved signal.
	open prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		trials: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "steane",
			Subsystem: "harness",
			Name:      "trials_total",
			Help:      "Total fault-tolerance trials evaluated",
		}, []string{"outcome"}),
		weight: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "steane",
			Subsystem: "harness",
			Name:      "correction_weight",
			Help:      "Number of data qubits flipped by the decoded correction",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
		open: f.NewCounter(prometheus.CounterOpts{
			Namespace: "steane",
			Subsystem: "harness",
			Name:      "open_histories_total",
			Help:      "Trials whose history ends with a signal that needs one more round",
		}),
	}
}
