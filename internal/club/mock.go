package club

import (
	"sync"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ListPlayersFunc                  func() ([]Player, error)
	GetPlayerFunc                    func(playerID string) (*Player, error)
	SavePlayerFunc                   func(p *Player) error
	DeletePlayerFunc                 func(playerID string) error
	AddPerformanceRecordFunc         func(playerID string, rec *PerformanceRecord) error
	UpdatePerformanceRecordFunc      func(playerID string, rec *PerformanceRecord) error
	DeletePerformanceRecordFunc      func(playerID, recordID string) error
	AddUnavailabilityFunc            func(playerID string, u *Unavailability) error
	DeleteUnavailabilityFunc         func(playerID, unavailabilityID string) error
	UpdateAttendanceCacheFunc        func(playerID string, matchRate, trainingRate float64) error
	GetRecordsForProcessingFunc      func() ([]PendingRecord, error)
	UpdateRecordProcessingStatusFunc func(recordID string, status ProcessingStatus) error
	ClearFunc                        func()

	// Call records
	SavePlayerCalls           []*Player
	DeletePlayerCalls         []string
	AddPerformanceRecordCalls []struct {
		PlayerID string
		Record   *PerformanceRecord
	}
	UpdateAttendanceCacheCalls []struct {
		PlayerID     string
		MatchRate    float64
		TrainingRate float64
	}
	UpdateRecordProcessingStatusCalls []struct {
		RecordID string
		Status   ProcessingStatus
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ListPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayer(playerID string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) SavePlayer(p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavePlayerCalls = append(m.SavePlayerCalls, p)
	if m.SavePlayerFunc != nil {
		return m.SavePlayerFunc(p)
	}
	return nil
}

func (m *MockStore) DeletePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) AddPerformanceRecord(playerID string, rec *PerformanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPerformanceRecordCalls = append(m.AddPerformanceRecordCalls, struct {
		PlayerID string
		Record   *PerformanceRecord
	}{playerID, rec})
	if m.AddPerformanceRecordFunc != nil {
		return m.AddPerformanceRecordFunc(playerID, rec)
	}
	return nil
}

func (m *MockStore) UpdatePerformanceRecord(playerID string, rec *PerformanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdatePerformanceRecordFunc != nil {
		return m.UpdatePerformanceRecordFunc(playerID, rec)
	}
	return nil
}

func (m *MockStore) DeletePerformanceRecord(playerID, recordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeletePerformanceRecordFunc != nil {
		return m.DeletePerformanceRecordFunc(playerID, recordID)
	}
	return nil
}

func (m *MockStore) AddUnavailability(playerID string, u *Unavailability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddUnavailabilityFunc != nil {
		return m.AddUnavailabilityFunc(playerID, u)
	}
	return nil
}

func (m *MockStore) DeleteUnavailability(playerID, unavailabilityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteUnavailabilityFunc != nil {
		return m.DeleteUnavailabilityFunc(playerID, unavailabilityID)
	}
	return nil
}

func (m *MockStore) UpdateAttendanceCache(playerID string, matchRate, trainingRate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateAttendanceCacheCalls = append(m.UpdateAttendanceCacheCalls, struct {
		PlayerID     string
		MatchRate    float64
		TrainingRate float64
	}{playerID, matchRate, trainingRate})
	if m.UpdateAttendanceCacheFunc != nil {
		return m.UpdateAttendanceCacheFunc(playerID, matchRate, trainingRate)
	}
	return nil
}

func (m *MockStore) GetRecordsForProcessing() ([]PendingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRecordsForProcessingFunc != nil {
		return m.GetRecordsForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateRecordProcessingStatus(recordID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateRecordProcessingStatusCalls = append(m.UpdateRecordProcessingStatusCalls, struct {
		RecordID string
		Status   ProcessingStatus
	}{recordID, status})
	if m.UpdateRecordProcessingStatusFunc != nil {
		return m.UpdateRecordProcessingStatusFunc(recordID, status)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
