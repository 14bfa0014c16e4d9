package team

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mauv0809/clicky-block/internal/database"
	"github.com/mauv0809/clicky-block/internal/metrics"
)

// Manager opens team entities lazily by id and keeps them for the life of
// the process. A team and its database are created together the first time
// the id is requested and are never deleted.
type Manager struct {
	mu      sync.Mutex
	dataDir string // empty means in-memory databases (tests)
	teams   map[string]*Team
	metrics metrics.Metrics
}

var _ Directory = (*Manager)(nil)

// NewManager creates a team directory rooted at dataDir.
func NewManager(dataDir string, metricsSvc metrics.Metrics) *Manager {
	return &Manager{
		dataDir: dataDir,
		teams:   make(map[string]*Team),
		metrics: metricsSvc,
	}
}

// Team returns the entity for id, opening its database on first use.
func (m *Manager) Team(id string) (Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.teams[id]; ok {
		return t, nil
	}

	path := ":memory:"
	if m.dataDir != "" {
		path = filepath.Join(m.dataDir, "team-"+id+".db")
	}
	db, err := database.InitTeamDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open team %s: %w", id, err)
	}
	log.Info("Opened team entity", "teamID", id, "path", path)

	t := New(id, db, m.metrics)
	m.teams[id] = t
	return t, nil
}

// Close closes every open team database.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.teams {
		if err := t.db.Close(); err != nil {
			log.Error("Failed to close team database", "teamID", id, "error", err)
		}
	}
}
