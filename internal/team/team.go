package team

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/clicky-block/internal/metrics"
)

// New creates a team entity on top of an already-initialized team database.
func New(id string, db *sql.DB, metricsSvc metrics.Metrics) *Team {
	return &Team{
		id:      id,
		db:      db,
		metrics: metricsSvc,
		name:    Placeholder,
		viewers: make(map[*Viewer]bool),
	}
}

var _ Entity = (*Team)(nil)

// ID returns the team's opaque identifier.
func (t *Team) ID() string {
	return t.id
}

// AddPlayer inserts a player into the roster and returns the username that
// was actually stored. An exact-match collision is resolved by appending the
// next ordinal suffix; exhausting the suffix list is an error.
func (t *Team) AddPlayer(username, country string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var existing int
	if err := t.db.QueryRow(`SELECT count(*) FROM players WHERE username = ?`, username).Scan(&existing); err != nil {
		return "", fmt.Errorf("failed to check roster: %w", err)
	}

	final := username
	if existing > 0 {
		var collisions int
		if err := t.db.QueryRow(`SELECT count(*) FROM players WHERE username LIKE ?`, username+" (%").Scan(&collisions); err != nil {
			return "", fmt.Errorf("failed to count collisions: %w", err)
		}
		if collisions >= len(suffixes) {
			return "", fmt.Errorf("cannot disambiguate %q: %w", username, ErrTooManyDuplicates)
		}
		final = fmt.Sprintf("%s (%s)", username, suffixes[collisions])
	}

	if _, err := t.db.Exec(`INSERT INTO players (username, country) VALUES (?, ?)`, final, country); err != nil {
		return "", fmt.Errorf("failed to add player: %w", err)
	}
	log.Info("Player joined team", "teamID", t.id, "username", final, "country", country)
	return final, nil
}

// RecordClick appends one entry to the click ledger and immediately
// broadcasts the refreshed stats to every open viewer channel. A click from
// a non-member fails and leaves the ledger unchanged.
func (t *Team) RecordClick(username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var member int
	if err := t.db.QueryRow(`SELECT count(*) FROM players WHERE username = ?`, username).Scan(&member); err != nil {
		return fmt.Errorf("failed to check roster: %w", err)
	}
	if member == 0 {
		return fmt.Errorf("click from %q on team %s: %w", username, t.id, ErrUnknownPlayer)
	}

	if _, err := t.db.Exec(`INSERT INTO clicks (username) VALUES (?)`, username); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	t.metrics.IncClicks()
	t.broadcastLocked()
	return nil
}

// Stats returns per-user click counts, most clicks first. Ties are broken by
// username so the order is deterministic.
func (t *Team) Stats() ([]PlayerStat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statsLocked()
}

func (t *Team) statsLocked() ([]PlayerStat, error) {
	rows, err := t.db.Query(`
		SELECT username, count(*) AS clicks FROM clicks
		GROUP BY username ORDER BY clicks DESC, username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	stats := []PlayerStat{}
	for rows.Next() {
		var s PlayerStat
		if err := rows.Scan(&s.Username, &s.Clicks); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// CountryStats aggregates clicks across all roster members per country,
// most clicks first.
func (t *Team) CountryStats() ([]CountryStat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countryStatsLocked()
}

func (t *Team) countryStatsLocked() ([]CountryStat, error) {
	rows, err := t.db.Query(`
		SELECT p.country, count(c.username) AS clicks
		FROM players p LEFT JOIN clicks c ON c.username = p.username
		GROUP BY p.country ORDER BY clicks DESC, p.country ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query country stats: %w", err)
	}
	defer rows.Close()

	stats := []CountryStat{}
	for rows.Next() {
		var s CountryStat
		if err := rows.Scan(&s.Country, &s.Clicks); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TotalClicks is the ledger length. It is always computed fresh; the cached
// copy lives in the game registry and is refreshed by the aggregation cycle.
func (t *Team) TotalClicks() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total int
	if err := t.db.QueryRow(`SELECT count(*) FROM clicks`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return total, nil
}

// PlayerCount returns the current roster size.
func (t *Team) PlayerCount() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var count int
	if err := t.db.QueryRow(`SELECT count(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// Roster returns all roster entries, oldest first.
func (t *Team) Roster() ([]Member, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.db.Query(`SELECT username, country FROM players ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Username, &m.Country); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// SetName mirrors the display name owned by the game registry onto this
// entity so broadcasts carry it.
func (t *Team) SetName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if name != "" && name != t.name {
		t.name = name
		t.broadcastLocked()
	}
}

// Name returns the mirrored display name.
func (t *Team) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

func (t *Team) snapshotLocked() (Snapshot, error) {
	stats, err := t.statsLocked()
	if err != nil {
		return Snapshot{}, err
	}
	countries, err := t.countryStatsLocked()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Type:    "stats",
		Name:    t.name,
		Team:    stats,
		Country: countries,
	}, nil
}

func (t *Team) broadcastLocked() {
	if len(t.viewers) == 0 {
		return
	}
	snap, err := t.snapshotLocked()
	if err != nil {
		log.Error("Failed to build broadcast snapshot", "teamID", t.id, "error", err)
		return
	}
	for v := range t.viewers {
		select {
		case v.send <- snap:
		default:
			// A viewer that cannot keep up is dropped; it will reconnect
			// and fetch a fresh snapshot.
			log.Warn("Dropping slow viewer", "teamID", t.id)
			delete(t.viewers, v)
			close(v.send)
		}
	}
	t.metrics.IncBroadcasts()
}
