package availability

import "github.com/prometheus/client_golang/prometheus"

var (
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "availability_checks_total",
			Help: "Total number of availability checks by result",
		},
		[]string{"result"},
	)

	ticksSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "availability_ticks_skipped_total",
			Help: "Ticks skipped because the previous check was still in flight",
		},
	)

	staleResultsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "availability_stale_results_dropped_total",
			Help: "Check results discarded as stale or cancelled",
		},
	)

	watchedDevices = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "availability_watched_devices",
			Help: "Number of devices currently under watch",
		},
	)
)

func init() {
	prometheus.MustRegister(checksTotal)
	prometheus.MustRegister(ticksSkipped)
	prometheus.MustRegister(staleResultsDropped)
	prometheus.MustRegister(watchedDevices)
}
