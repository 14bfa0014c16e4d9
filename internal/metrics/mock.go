package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	joins          int
	clicks         int
	broadcasts     int
	viewers        int
	aggregatorRuns int
	namerCalls     int
	namerFailures  int
	startupTime    float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncJoins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joins++
}

func (m *Mock) IncClicks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks++
}

func (m *Mock) IncBroadcasts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts++
}

func (m *Mock) IncViewerConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewers++
}

func (m *Mock) DecViewerConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewers--
}

func (m *Mock) IncAggregatorRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregatorRuns++
}

func (m *Mock) IncNamerCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namerCalls++
}

func (m *Mock) IncNamerFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.namerFailures++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Joins returns the number of times IncJoins was called.
func (m *Mock) Joins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joins
}

// Clicks returns the number of times IncClicks was called.
func (m *Mock) Clicks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clicks
}

// Broadcasts returns the number of times IncBroadcasts was called.
func (m *Mock) Broadcasts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broadcasts
}

// ViewerConnections returns the current viewer connection count.
func (m *Mock) ViewerConnections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewers
}

// AggregatorRuns returns the number of times IncAggregatorRuns was called.
func (m *Mock) AggregatorRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aggregatorRuns
}

// NamerCalls returns the number of times IncNamerCalls was called.
func (m *Mock) NamerCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.namerCalls
}

// NamerFailures returns the number of times IncNamerFailures was called.
func (m *Mock) NamerFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.namerFailures
}
