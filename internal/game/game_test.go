package game_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/clicky-block/internal/config"
	"github.com/mauv0809/clicky-block/internal/database"
	"github.com/mauv0809/clicky-block/internal/game"
	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/namer"
	"github.com/mauv0809/clicky-block/internal/team"
)

// setupGame builds a game entity over in-memory databases with real team
// entities behind it.
func setupGame(t *testing.T, namerClient namer.Namer, moderate bool) (*game.Game, *team.Manager, *sql.DB, func()) {
	t.Helper()

	db, err := database.InitGameDB(":memory:", "", "")
	require.NoError(t, err)

	m := metrics.NewMock()
	teams := team.NewManager("", m)
	g := game.New("builderday", db, teams, namerClient, m, moderate)

	teardown := func() {
		teams.Close()
		db.Close()
	}
	return g, teams, db, teardown
}

func TestAssignPlayerFillsTeamsInOrder(t *testing.T) {
	g, _, _, teardown := setupGame(t, namer.NewMock(), false)
	defer teardown()

	// Three joins land on the same team, with the duplicate name suffixed.
	u1, t1, err := g.AssignPlayer("bob", "DK")
	require.NoError(t, err)
	assert.Equal(t, "bob", u1)

	u2, t2, err := g.AssignPlayer("bob", "DK")
	require.NoError(t, err)
	assert.Equal(t, "bob (the second)", u2)
	assert.Equal(t, t1, t2)

	u3, t3, err := g.AssignPlayer("carol", "SE")
	require.NoError(t, err)
	assert.Equal(t, "carol", u3)
	assert.Equal(t, t1, t3)

	// The first team is now full; a fourth join creates a second team.
	_, t4, err := g.AssignPlayer("dave", "NO")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t4)

	standings, err := g.Leaderboard()
	require.NoError(t, err)
	assert.Len(t, standings, 2)
}

func TestFullFlagIsMonotone(t *testing.T) {
	g, _, db, teardown := setupGame(t, namer.NewMock(), false)
	defer teardown()

	var teamID string
	for _, u := range []string{"a", "b", "c"} {
		var err error
		_, teamID, err = g.AssignPlayer(u, "DK")
		require.NoError(t, err)
	}

	var full int
	require.NoError(t, db.QueryRow(`SELECT full FROM teams WHERE id = ?`, teamID).Scan(&full))
	assert.Equal(t, 1, full)

	// Further joins and reconcile cycles never reset the flag.
	_, _, err := g.AssignPlayer("d", "DK")
	require.NoError(t, err)
	require.NoError(t, g.ReconcileTotals(context.Background()))

	require.NoError(t, db.QueryRow(`SELECT full FROM teams WHERE id = ?`, teamID).Scan(&full))
	assert.Equal(t, 1, full)
}

func TestTeamsNeverExceedCapacity(t *testing.T) {
	g, teams, _, teardown := setupGame(t, namer.NewMock(), false)
	defer teardown()

	seen := map[string]bool{}
	for i := range 10 {
		_, teamID, err := g.AssignPlayer(fmt.Sprintf("player%d", i), "DK")
		require.NoError(t, err)
		seen[teamID] = true
	}

	for teamID := range seen {
		entity, err := teams.Team(teamID)
		require.NoError(t, err)
		count, err := entity.PlayerCount()
		require.NoError(t, err)
		assert.LessOrEqual(t, count, team.Capacity)
	}
	// 10 players over capacity-3 teams means four teams.
	assert.Len(t, seen, 4)
}

func TestReconcileTotalsRefreshesCache(t *testing.T) {
	g, teams, _, teardown := setupGame(t, namer.NewMock(), false)
	defer teardown()

	_, teamID, err := g.AssignPlayer("bob", "DK")
	require.NoError(t, err)

	entity, err := teams.Team(teamID)
	require.NoError(t, err)
	for range 5 {
		require.NoError(t, entity.RecordClick("bob"))
	}

	// The cache is stale until a cycle completes.
	standings, err := g.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, 0, standings[0].Clicks)

	require.NoError(t, g.ReconcileTotals(context.Background()))

	standings, err = g.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, 5, standings[0].Clicks)
}

func TestReconcileTotalsIsolatesFailures(t *testing.T) {
	db, err := database.InitGameDB(":memory:", "", "")
	require.NoError(t, err)
	defer db.Close()

	healthy := &team.MockEntity{StatsValue: []team.PlayerStat{{Username: "bob", Clicks: 7}}}
	broken := &team.MockEntity{TotalClicksFunc: func() (int, error) {
		return 0, errors.New("entity unreachable")
	}}

	dir := team.NewMockDirectory()
	dir.Entities["team-ok"] = healthy
	dir.Entities["team-broken"] = broken

	_, err = db.Exec(`INSERT INTO teams (id) VALUES ('team-ok'), ('team-broken')`)
	require.NoError(t, err)

	g := game.New("builderday", db, dir, namer.NewMock(), metrics.NewMock(), false)
	require.NoError(t, g.ReconcileTotals(context.Background()))

	standings, err := g.Leaderboard()
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "team-ok", standings[0].TeamID)
	assert.Equal(t, 7, standings[0].Clicks)
	assert.Equal(t, 0, standings[1].Clicks)
}

func TestRenameFullTeams(t *testing.T) {
	mockNamer := namer.NewMock()
	mockNamer.TeamNameFunc = func(members []namer.Player) (string, error) {
		require.Len(t, members, 3)
		return "The Copenhagen Clickers", nil
	}
	g, teams, db, teardown := setupGame(t, mockNamer, false)
	defer teardown()

	var teamID string
	for _, u := range []string{"a", "b", "c"} {
		var err error
		_, teamID, err = g.AssignPlayer(u, "DK")
		require.NoError(t, err)
	}

	require.NoError(t, g.RenameFullTeams(context.Background()))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM teams WHERE id = ?`, teamID).Scan(&name))
	assert.Equal(t, "The Copenhagen Clickers", name)

	// The name is mirrored onto the team entity for broadcasts.
	entity, err := teams.Team(teamID)
	require.NoError(t, err)
	assert.Equal(t, "The Copenhagen Clickers", entity.Name())

	// Already-named teams are not renamed again.
	require.NoError(t, g.RenameFullTeams(context.Background()))
	assert.Len(t, mockNamer.TeamNameCalls, 1)
}

func TestRenameFullTeamsSkipsPartialTeams(t *testing.T) {
	mockNamer := namer.NewMock()
	g, _, _, teardown := setupGame(t, mockNamer, false)
	defer teardown()

	_, _, err := g.AssignPlayer("alone", "DK")
	require.NoError(t, err)

	require.NoError(t, g.RenameFullTeams(context.Background()))
	assert.Empty(t, mockNamer.TeamNameCalls)
}

func TestRenameFullTeamsKeepsPlaceholderOnFailure(t *testing.T) {
	mockNamer := namer.NewMock()
	mockNamer.TeamNameFunc = func(members []namer.Player) (string, error) {
		return "", errors.New("model unavailable")
	}
	g, _, db, teardown := setupGame(t, mockNamer, false)
	defer teardown()

	var teamID string
	for _, u := range []string{"a", "b", "c"} {
		var err error
		_, teamID, err = g.AssignPlayer(u, "DK")
		require.NoError(t, err)
	}

	require.NoError(t, g.RenameFullTeams(context.Background()))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM teams WHERE id = ?`, teamID).Scan(&name))
	assert.Equal(t, team.Placeholder, name)

	// Next cycle retries the same team.
	require.NoError(t, g.RenameFullTeams(context.Background()))
	assert.Len(t, mockNamer.TeamNameCalls, 2)
}

func TestRenameFullTeamsModeration(t *testing.T) {
	mockNamer := namer.NewMock()
	mockNamer.TeamNameFunc = func(members []namer.Player) (string, error) {
		return "Something Rude", nil
	}
	mockNamer.UnsafeFunc = func(text string) (bool, error) {
		return true, nil
	}
	g, _, db, teardown := setupGame(t, mockNamer, true)
	defer teardown()

	var teamID string
	for _, u := range []string{"a", "b", "c"} {
		var err error
		_, teamID, err = g.AssignPlayer(u, "DK")
		require.NoError(t, err)
	}

	require.NoError(t, g.RenameFullTeams(context.Background()))

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM teams WHERE id = ?`, teamID).Scan(&name))
	assert.Equal(t, team.Placeholder, name)
	assert.Equal(t, []string{"Something Rude"}, mockNamer.UnsafeCalls)
}

func TestLeaderboardOrderAndTies(t *testing.T) {
	db, err := database.InitGameDB(":memory:", "", "")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO teams (id, name, total_clicks) VALUES
		('first', 'Alpha', 5),
		('second', 'Beta', 9),
		('third', 'Gamma', 5)`)
	require.NoError(t, err)

	g := game.New("builderday", db, team.NewMockDirectory(), namer.NewMock(), metrics.NewMock(), false)

	standings, err := g.Leaderboard()
	require.NoError(t, err)
	require.Len(t, standings, 3)
	assert.Equal(t, "second", standings[0].TeamID)
	// Equal totals preserve registry insertion order.
	assert.Equal(t, "first", standings[1].TeamID)
	assert.Equal(t, "third", standings[2].TeamID)
}

func TestPlacement(t *testing.T) {
	db, err := database.InitGameDB(":memory:", "", "")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO teams (id, total_clicks) VALUES
		('first', 3), ('second', 10), ('third', 1)`)
	require.NoError(t, err)

	g := game.New("builderday", db, team.NewMockDirectory(), namer.NewMock(), metrics.NewMock(), false)

	placement, total, err := g.Placement("first")
	require.NoError(t, err)
	assert.Equal(t, 2, placement)
	assert.Equal(t, 3, total)

	_, _, err = g.Placement("missing")
	require.ErrorIs(t, err, game.ErrTeamNotFound)
}

func TestManagerReturnsSameGameAndRunsHook(t *testing.T) {
	m := metrics.NewMock()
	teams := team.NewManager("", m)
	defer teams.Close()

	created := []string{}
	mgr := game.NewManager("", config.TursoConfig{}, teams, namer.NewMock(), m, false)
	mgr.OnCreate = func(g *game.Game) {
		created = append(created, g.Name())
	}

	a, err := mgr.Get("builderday")
	require.NoError(t, err)
	b, err := mgr.Get("builderday")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []string{"builderday"}, created)
}
