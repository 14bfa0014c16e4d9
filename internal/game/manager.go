package game

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/clicky-block/internal/config"
	"github.com/mauv0809/clicky-block/internal/database"
	"github.com/mauv0809/clicky-block/internal/metrics"
	"github.com/mauv0809/clicky-block/internal/namer"
	"github.com/mauv0809/clicky-block/internal/team"
)

// Manager opens game entities lazily by competition name. A game entity is
// created on first use and persists for the life of the process. The
// OnCreate hook runs once per new entity, outside the manager lock; the
// server uses it to start the entity's aggregation cycle.
type Manager struct {
	mu      sync.Mutex
	dataDir string // empty means in-memory databases (tests)
	turso   config.TursoConfig
	games   map[string]*Game

	teams    team.Directory
	namer    namer.Namer
	metrics  metrics.Metrics
	moderate bool

	// OnCreate is invoked for every newly-created game entity.
	OnCreate func(g *Game)
}

// NewManager creates a game directory rooted at dataDir. When turso is
// configured, registry databases live on Turso instead of local files.
func NewManager(dataDir string, turso config.TursoConfig, teams team.Directory, namerClient namer.Namer, metricsSvc metrics.Metrics, moderate bool) *Manager {
	return &Manager{
		dataDir:  dataDir,
		turso:    turso,
		games:    make(map[string]*Game),
		teams:    teams,
		namer:    namerClient,
		metrics:  metricsSvc,
		moderate: moderate,
	}
}

// Get returns the game entity for name, creating it on first use.
func (m *Manager) Get(name string) (*Game, error) {
	m.mu.Lock()
	if g, ok := m.games[name]; ok {
		m.mu.Unlock()
		return g, nil
	}

	path := ":memory:"
	if m.dataDir != "" {
		path = filepath.Join(m.dataDir, "game-"+name+".db")
	}
	db, err := database.InitGameDB(path, m.turso.PrimaryURL, m.turso.AuthToken)
	if err != nil {
		m.mu.Unlock()
		return nil, fmt.Errorf("failed to open game %s: %w", name, err)
	}
	log.Info("Opened game entity", "game", name, "path", path)

	g := New(name, db, m.teams, m.namer, m.metrics, m.moderate)
	m.games[name] = g
	hook := m.OnCreate
	m.mu.Unlock()

	if hook != nil {
		hook(g)
	}
	return g, nil
}

// Close closes every open registry database.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, g := range m.games {
		if err := g.db.Close(); err != nil {
			log.Error("Failed to close game database", "game", name, "error", err)
		}
	}
}
