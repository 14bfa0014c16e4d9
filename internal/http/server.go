package http

import (
	"net/http"

	"github.com/mauv0809/clicky-block/internal/config"
	"github.com/mauv0809/clicky-block/internal/game"
	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/team"
)

func NewServer(games *game.Manager, teams team.Directory, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Games:          games,
		Teams:          teams,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	// Pages.
	s.Router.Handle("GET /{$}", Chain(s.JoinPageHandler(), paramsMiddleware))
	s.Router.Handle("POST /join", Chain(s.JoinHandler(), paramsMiddleware))
	s.Router.Handle("GET /play/{game}/{teamId}", Chain(s.PlayPageHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard/{game}", Chain(s.LeaderboardPageHandler(), paramsMiddleware))
	s.Router.Handle("GET /static/", Chain(s.StaticHandler(), paramsMiddleware))

	// API.
	s.Router.Handle("GET /api/leaderboard/{game}", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/leaderboard/placement/{game}/{teamId}", Chain(s.PlacementHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/click/{game}/{teamId}", Chain(s.ClickHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/stats/{game}/{teamId}", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/connect/{game}/{teamId}/ws", Chain(s.ConnectHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
