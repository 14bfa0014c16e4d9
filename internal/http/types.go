package http

import (
	"net/http"

	"github.com/mauv0809/clicky-block/internal/config"
	"github.com/mauv0809/clicky-block/internal/game"
	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/team"
)

type Server struct {
	Games          *game.Manager
	Teams          team.Directory
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

// clientMessage is what a viewer sends over its websocket.
type clientMessage struct {
	Type     string `json:"type"` // "hello" or "click"
	Username string `json:"username"`
}

type clickRequest struct {
	Username string `json:"username"`
}

type clickResponse struct {
	Success bool `json:"success"`
}

type statsResponse struct {
	Results []team.PlayerStat `json:"results"`
}

type leaderboardResponse struct {
	Results []game.Standing `json:"results"`
}

type placementResponse struct {
	Placement  int `json:"placement"`
	TotalCount int `json:"totalCount"`
}
