package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicky_joins_total",
			Help: "The total number of players assigned to a team.",
		}),
		Clicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicky_clicks_total",
			Help: "The total number of accepted clicks across all teams.",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicky_broadcasts_total",
			Help: "The total number of stats broadcasts fanned out to viewers.",
		}),
		ViewerConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clicky_viewer_connections",
			Help: "The number of currently connected viewer channels.",
		}),
		AggregatorRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicky_aggregator_runs_total",
			Help: "The total number of completed rename/reconcile cycles.",
		}),
		NamerCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicky_namer_calls_total",
			Help: "The total number of team naming calls attempted.",
		}),
		NamerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clicky_namer_failures_total",
			Help: "The total number of team naming calls that failed.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clicky_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Joins,
		s.Clicks,
		s.Broadcasts,
		s.ViewerConnections,
		s.AggregatorRuns,
		s.NamerCalls,
		s.NamerFailures,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncJoins() {
	s.Joins.Inc()
}

func (s *Service) IncClicks() {
	s.Clicks.Inc()
}

func (s *Service) IncBroadcasts() {
	s.Broadcasts.Inc()
}

func (s *Service) IncViewerConnections() {
	s.ViewerConnections.Inc()
}

func (s *Service) DecViewerConnections() {
	s.ViewerConnections.Dec()
}

func (s *Service) IncAggregatorRuns() {
	s.AggregatorRuns.Inc()
}

func (s *Service) IncNamerCalls() {
	s.NamerCalls.Inc()
}

func (s *Service) IncNamerFailures() {
	s.NamerFailures.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
