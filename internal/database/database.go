package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/mauv0809/clicky-block/migrations"
)

// InitGameDB opens the game registry database and ensures its schema is up
// to date. dbPath is a local filename (or ":memory:" in tests). When
// primaryURL is set, the registry lives on Turso instead and dbPath is
// ignored.
func InitGameDB(dbPath, primaryURL, authToken string) (*sql.DB, error) {
	db, err := open(dbPath, primaryURL, authToken)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, "game"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate game db: %w", err)
	}
	return db, nil
}

// InitTeamDB opens a single team's database and ensures its schema is up to
// date. Each team entity owns its own database file.
func InitTeamDB(dbPath string) (*sql.DB, error) {
	db, err := open(dbPath, "", "")
	if err != nil {
		return nil, err
	}
	if err := migrate(db, "team"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate team db: %w", err)
	}
	return db, nil
}

func open(dbPath, primaryURL, authToken string) (*sql.DB, error) {
	if primaryURL == "" {
		log.Debug("Opening local SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", "file:"+dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database %s: %w", dbPath, err)
		}
		// The entity layer serializes all access; a single connection keeps
		// SQLite happy with ":memory:" databases as well.
		db.SetMaxOpenConns(1)
		return db, nil
	}
	log.Info("Opening Turso database", "url", primaryURL)
	db, err := sql.Open("libsql", primaryURL+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
	}
	return db, nil
}

func migrate(db *sql.DB, dir string) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, dir)
}
