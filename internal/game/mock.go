package game

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Coordinator interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	AssignPlayerFunc    func(username, country string) (string, string, error)
	RenameFullTeamsFunc func(ctx context.Context) error
	ReconcileTotalsFunc func(ctx context.Context) error
	LeaderboardValue    []Standing

	AssignPlayerCalls    int
	RenameFullTeamsCalls int
	ReconcileTotalsCalls int
}

var _ Coordinator = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) AssignPlayer(username, country string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignPlayerCalls++
	if m.AssignPlayerFunc != nil {
		return m.AssignPlayerFunc(username, country)
	}
	return username, "team-1", nil
}

func (m *Mock) RenameFullTeams(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RenameFullTeamsCalls++
	if m.RenameFullTeamsFunc != nil {
		return m.RenameFullTeamsFunc(ctx)
	}
	return nil
}

func (m *Mock) ReconcileTotals(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReconcileTotalsCalls++
	if m.ReconcileTotalsFunc != nil {
		return m.ReconcileTotalsFunc(ctx)
	}
	return nil
}

func (m *Mock) Leaderboard() ([]Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LeaderboardValue, nil
}

func (m *Mock) Placement(teamID string) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.LeaderboardValue {
		if s.TeamID == teamID {
			return i + 1, len(m.LeaderboardValue), nil
		}
	}
	return 0, 0, ErrTeamNotFound
}

func (m *Mock) DisplayName(teamID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.LeaderboardValue {
		if s.TeamID == teamID {
			return s.Name, nil
		}
	}
	return "", ErrTeamNotFound
}

// Renames returns how many times RenameFullTeams was called.
func (m *Mock) Renames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RenameFullTeamsCalls
}

// Reconciles returns how many times ReconcileTotals was called.
func (m *Mock) Reconciles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ReconcileTotalsCalls
}
