package team

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/clicky-block/internal/metrics"
)

// Capacity is the fixed number of players per team. The game entity is the
// sole writer of the "full" flag once a roster reaches this size.
const Capacity = 3

// Placeholder is the display name of a team that has not been named yet.
const Placeholder = "tbd"

var (
	// ErrUnknownPlayer is returned when a click arrives for a username that
	// never joined this team's roster. The ledger is left untouched.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrTooManyDuplicates is returned when a username collides more often
	// than the suffix list can disambiguate.
	ErrTooManyDuplicates = errors.New("too many duplicate usernames")
)

// suffixes disambiguate duplicate usernames within one roster, in order.
var suffixes = []string{"the second", "the third", "the fourth", "the fifth"}

// Team is a single-threaded entity owning one roster and one click ledger,
// backed by its own database. All exported operations serialize on mu, so
// the entity only ever sees one request at a time.
type Team struct {
	id      string
	db      *sql.DB
	metrics metrics.Metrics

	mu      sync.Mutex
	name    string
	viewers map[*Viewer]bool
}

// Member is a single roster entry.
type Member struct {
	Username string `json:"username"`
	Country  string `json:"country"`
}

// PlayerStat is one row of the per-user click stats.
type PlayerStat struct {
	Username string `json:"username"`
	Clicks   int    `json:"clicks"`
}

// CountryStat aggregates clicks across all roster members of one country.
type CountryStat struct {
	Country string `json:"country"`
	Clicks  int    `json:"clicks"`
}

// Snapshot is the broadcast message pushed to every connected viewer.
type Snapshot struct {
	Type    string        `json:"type"` // always "stats"
	Name    string        `json:"name"`
	Team    []PlayerStat  `json:"team"`
	Country []CountryStat `json:"country"`
}
