package game

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/namer"
	"github.com/mauv0809/clicky-block/internal/team"
)

// New creates a game entity on top of an already-initialized registry
// database. moderate enables the content-safety check on generated names.
func New(name string, db *sql.DB, teams team.Directory, namerClient namer.Namer, metricsSvc metrics.Metrics, moderate bool) *Game {
	return &Game{
		name:     name,
		db:       db,
		teams:    teams,
		namer:    namerClient,
		metrics:  metricsSvc,
		moderate: moderate,
	}
}

var _ Coordinator = (*Game)(nil)

// Name returns the competition name this entity coordinates.
func (g *Game) Name() string {
	return g.name
}

// AssignPlayer finds the first non-full team (creating one when none
// exists), registers the player with that team entity and returns the
// de-duplicated username plus the team id. The entity flips the team's
// "full" flag once the roster reaches capacity; the flag is monotone.
func (g *Game) AssignPlayer(username, country string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var teamID string
	for {
		err := g.db.QueryRow(`SELECT id FROM teams WHERE full = 0 ORDER BY rowid LIMIT 1`).Scan(&teamID)
		if err == sql.ErrNoRows {
			// Claim-or-create: insert a fresh team row and retry the
			// search against it.
			teamID = uuid.NewString()
			if _, err := g.db.Exec(`INSERT INTO teams (id) VALUES (?)`, teamID); err != nil {
				return "", "", fmt.Errorf("could not persist new team: %w", err)
			}
			log.Info("Created new team", "game", g.name, "teamID", teamID)
			continue
		}
		if err != nil {
			return "", "", fmt.Errorf("failed to find available team: %w", err)
		}
		break
	}

	entity, err := g.teams.Team(teamID)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach team %s: %w", teamID, err)
	}

	assigned, err := entity.AddPlayer(username, country)
	if err != nil {
		return "", "", fmt.Errorf("failed to add player to team %s: %w", teamID, err)
	}

	// Mirror the current display name onto the team entity so broadcasts
	// carry it.
	if name, err := g.displayNameLocked(teamID); err == nil {
		entity.SetName(name)
	}

	count, err := entity.PlayerCount()
	if err != nil {
		return "", "", fmt.Errorf("failed to read roster size of team %s: %w", teamID, err)
	}
	if count >= team.Capacity {
		if _, err := g.db.Exec(`UPDATE teams SET full = 1 WHERE id = ?`, teamID); err != nil {
			log.Error("Failed to mark team full", "teamID", teamID, "error", err)
		} else {
			log.Info("Team is full", "game", g.name, "teamID", teamID)
		}
	}

	g.metrics.IncJoins()
	return assigned, teamID, nil
}

// RenameFullTeams scans full teams still carrying the placeholder name and
// asks the naming capability for a display name. Naming is best-effort: a
// failed or rejected name keeps the placeholder and is retried on the next
// cycle.
func (g *Game) RenameFullTeams(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err := g.db.Query(`SELECT id FROM teams WHERE full = 1 AND name = ?`, team.Placeholder)
	if err != nil {
		return fmt.Errorf("failed to query unnamed teams: %w", err)
	}
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		entity, err := g.teams.Team(id)
		if err != nil {
			log.Error("Skipping unreachable team in rename", "teamID", id, "error", err)
			continue
		}
		roster, err := entity.Roster()
		if err != nil {
			log.Error("Failed to fetch roster for naming", "teamID", id, "error", err)
			continue
		}
		members := make([]namer.Player, 0, len(roster))
		for _, m := range roster {
			members = append(members, namer.Player{Username: m.Username, Country: m.Country})
		}

		g.metrics.IncNamerCalls()
		name, err := g.namer.TeamName(ctx, members)
		if err != nil {
			g.metrics.IncNamerFailures()
			log.Warn("Naming failed, will retry next cycle", "teamID", id, "error", err)
			continue
		}

		if g.moderate {
			unsafe, err := g.namer.Unsafe(ctx, name)
			if err != nil {
				g.metrics.IncNamerFailures()
				log.Warn("Safety check failed, will retry next cycle", "teamID", id, "error", err)
				continue
			}
			if unsafe {
				log.Warn("Rejected unsafe team name, will retry next cycle", "teamID", id)
				continue
			}
		}

		if _, err := g.db.Exec(`UPDATE teams SET name = ? WHERE id = ?`, name, id); err != nil {
			log.Error("Failed to store team name", "teamID", id, "error", err)
			continue
		}
		entity.SetName(name)
		log.Info("Named team", "game", g.name, "teamID", id, "name", name)
	}
	return nil
}

// ReconcileTotals asks every team entity for its true total click count and
// overwrites the cached total. Per-team fetches run concurrently and settle
// individually: one unreachable team never stalls the sweep.
func (g *Game) ReconcileTotals(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err := g.db.Query(`SELECT id FROM teams`)
	if err != nil {
		return fmt.Errorf("failed to query teams: %w", err)
	}
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	type total struct {
		id     string
		clicks int
		err    error
	}
	results := make(chan total, len(ids))
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			entity, err := g.teams.Team(id)
			if err != nil {
				results <- total{id: id, err: err}
				return
			}
			clicks, err := entity.TotalClicks()
			results <- total{id: id, clicks: clicks, err: err}
		}(id)
	}
	wg.Wait()
	close(results)

	for r := range results {
		if r.err != nil {
			log.Error("Skipping team in reconciliation", "teamID", r.id, "error", r.err)
			continue
		}
		if _, err := g.db.Exec(`UPDATE teams SET total_clicks = ? WHERE id = ?`, r.clicks, r.id); err != nil {
			log.Error("Failed to update cached total", "teamID", r.id, "error", err)
		}
	}
	return nil
}

// Leaderboard returns the registry sorted by cached totals, descending.
// Ties preserve insertion order. The totals are only as fresh as the last
// completed reconciliation cycle.
func (g *Game) Leaderboard() ([]Standing, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leaderboardLocked()
}

func (g *Game) leaderboardLocked() ([]Standing, error) {
	rows, err := g.db.Query(`SELECT id, name, total_clicks FROM teams ORDER BY total_clicks DESC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	standings := []Standing{}
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.TeamID, &s.Name, &s.Clicks); err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

// Placement returns a team's 1-based leaderboard rank and the number of
// teams in the registry.
func (g *Game) Placement(teamID string) (int, int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	standings, err := g.leaderboardLocked()
	if err != nil {
		return 0, 0, err
	}
	for i, s := range standings {
		if s.TeamID == teamID {
			return i + 1, len(standings), nil
		}
	}
	return 0, 0, fmt.Errorf("placement of %s: %w", teamID, ErrTeamNotFound)
}

// DisplayName returns the registry's display name for a team.
func (g *Game) DisplayName(teamID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.displayNameLocked(teamID)
}

func (g *Game) displayNameLocked(teamID string) (string, error) {
	var name string
	err := g.db.QueryRow(`SELECT name FROM teams WHERE id = ?`, teamID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("display name of %s: %w", teamID, ErrTeamNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read display name: %w", err)
	}
	return name, nil
}
