package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGameDB_CreatesTables(t *testing.T) {

	db, err := InitGameDB(":memory:", "", "")
	require.NoError(t, err, "InitGameDB should not return an error")
	defer db.Close()

	// Check if the 'teams' table was created
	var teamsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='teams'").Scan(&teamsTableName)
	require.NoError(t, err, "Querying for teams table should not produce an error")
	assert.Equal(t, "teams", teamsTableName, "The 'teams' table should be created")

	// New teams default to the placeholder name and an open roster.
	_, err = db.Exec("INSERT INTO teams (id) VALUES ('team-1')")
	require.NoError(t, err)
	var name string
	var full int
	err = db.QueryRow("SELECT name, full FROM teams WHERE id='team-1'").Scan(&name, &full)
	require.NoError(t, err)
	assert.Equal(t, "tbd", name)
	assert.Equal(t, 0, full)
}

func TestInitTeamDB_CreatesTables(t *testing.T) {

	db, err := InitTeamDB(":memory:")
	require.NoError(t, err, "InitTeamDB should not return an error")
	defer db.Close()

	// Check if the 'players' table was created
	var playersTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='players'").Scan(&playersTableName)
	require.NoError(t, err, "Querying for players table should not produce an error")
	assert.Equal(t, "players", playersTableName, "The 'players' table should be created")

	// Check if the 'clicks' table was created
	var clicksTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='clicks'").Scan(&clicksTableName)
	require.NoError(t, err, "Querying for clicks table should not produce an error")
	assert.Equal(t, "clicks", clicksTableName, "The 'clicks' table should be created")

	// Duplicate usernames are rejected by the schema.
	_, err = db.Exec("INSERT INTO players (username, country) VALUES ('alice', 'DK')")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO players (username, country) VALUES ('alice', 'SE')")
	assert.Error(t, err, "Duplicate usernames should violate the unique constraint")
}
