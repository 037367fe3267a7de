package metrics

import "sync"

// MockMetrics is a no-op Metrics implementation that records call counts.
type MockMetrics struct {
	mu sync.Mutex

	StatComputationsCount int
	ComputeDurations      []float64
	RecordsProcessedCount int
	SlackNotifSentCount   int
	SlackNotifFailedCount int
	StartupTimes          []float64
}

var _ Metrics = (*MockMetrics)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncStatComputations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatComputationsCount++
}

func (m *MockMetrics) ObserveComputeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ComputeDurations = append(m.ComputeDurations, duration)
}

func (m *MockMetrics) IncRecordsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsProcessedCount++
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCount++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimes = append(m.StartupTimes, duration)
}
