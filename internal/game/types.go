package game

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/namer"
	"github.com/mauv0809/clicky-block/internal/team"
)

var (
	// ErrTeamNotFound is returned when a team id has no registry row.
	ErrTeamNotFound = errors.New("team not found")
)

// Game is the coordinator entity for one competition. It owns the team
// registry and is the only writer of the cached "full" flag, display name
// and total-click columns. All exported operations serialize on mu, so the
// entity only ever sees one request at a time; that is what makes the
// claim-or-create assignment loop race-free without row locks.
type Game struct {
	name     string
	db       *sql.DB
	teams    team.Directory
	namer    namer.Namer
	metrics  metrics.Metrics
	moderate bool

	mu sync.Mutex
}

// Standing is one leaderboard row: the registry projection of a team.
type Standing struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
	Clicks int    `json:"clicks"`
}
