package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Joins              prometheus.Counter
	Clicks             prometheus.Counter
	Broadcasts         prometheus.Counter
	ViewerConnections  prometheus.Gauge
	AggregatorRuns     prometheus.Counter
	NamerCalls         prometheus.Counter
	NamerFailures      prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
