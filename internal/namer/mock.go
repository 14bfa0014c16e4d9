package namer

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Namer interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	TeamNameFunc func(members []Player) (string, error)
	UnsafeFunc   func(text string) (bool, error)

	TeamNameCalls [][]Player
	UnsafeCalls   []string
}

var _ Namer = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) TeamName(ctx context.Context, members []Player) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamNameCalls = append(m.TeamNameCalls, members)
	if m.TeamNameFunc != nil {
		return m.TeamNameFunc(members)
	}
	return "The Mock Clickers", nil
}

func (m *Mock) Unsafe(ctx context.Context, text string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnsafeCalls = append(m.UnsafeCalls, text)
	if m.UnsafeFunc != nil {
		return m.UnsafeFunc(text)
	}
	return false, nil
}
