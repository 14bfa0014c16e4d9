package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncJoins()
	IncClicks()
	IncBroadcasts()
	IncViewerConnections()
	DecViewerConnections()
	IncAggregatorRuns()
	IncNamerCalls()
	IncNamerFailures()
	SetStartupTime(duration float64)
}
