package team

import "sync"

// MockDirectory is a Directory backed by injectable entities, for tests
// that need to simulate unreachable teams.
type MockDirectory struct {
	mu       sync.Mutex
	Entities map[string]Entity
	// TeamFunc overrides Team entirely when set.
	TeamFunc func(id string) (Entity, error)
}

var _ Directory = (*MockDirectory)(nil)

// NewMockDirectory creates an empty mock directory.
func NewMockDirectory() *MockDirectory {
	return &MockDirectory{Entities: make(map[string]Entity)}
}

func (m *MockDirectory) Team(id string) (Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TeamFunc != nil {
		return m.TeamFunc(id)
	}
	return m.Entities[id], nil
}

// MockEntity implements Entity with configurable results.
type MockEntity struct {
	mu sync.Mutex

	AddPlayerFunc   func(username, country string) (string, error)
	RecordClickFunc func(username string) error
	TotalClicksFunc func() (int, error)

	NameValue    string
	RosterValue  []Member
	StatsValue   []PlayerStat
	CountryValue []CountryStat
	Players      int

	RecordClickCalls []string
	SetNameCalls     []string
}

var _ Entity = (*MockEntity)(nil)

func (m *MockEntity) AddPlayer(username, country string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(username, country)
	}
	m.Players++
	m.RosterValue = append(m.RosterValue, Member{Username: username, Country: country})
	return username, nil
}

func (m *MockEntity) RecordClick(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordClickCalls = append(m.RecordClickCalls, username)
	if m.RecordClickFunc != nil {
		return m.RecordClickFunc(username)
	}
	return nil
}

func (m *MockEntity) Stats() ([]PlayerStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StatsValue, nil
}

func (m *MockEntity) CountryStats() ([]CountryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CountryValue, nil
}

func (m *MockEntity) TotalClicks() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TotalClicksFunc != nil {
		return m.TotalClicksFunc()
	}
	total := 0
	for _, s := range m.StatsValue {
		total += s.Clicks
	}
	return total, nil
}

func (m *MockEntity) PlayerCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Players, nil
}

func (m *MockEntity) Roster() ([]Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RosterValue, nil
}

func (m *MockEntity) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetNameCalls = append(m.SetNameCalls, name)
	m.NameValue = name
}

func (m *MockEntity) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.NameValue
}

func (m *MockEntity) Attach(v *Viewer)  {}
func (m *MockEntity) Detach(v *Viewer)  {}
func (m *MockEntity) Refresh(v *Viewer) {}
