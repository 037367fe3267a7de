package notifier

import (
	"sync"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendResultNotificationFunc func(record *club.PerformanceRecord, clubName string, dryRun bool) error

	// Call records
	SendResultNotificationCalls []struct {
		Record   *club.PerformanceRecord
		ClubName string
	}
	SendTeamSummaryCalls []struct{ Summary *stats.TeamSummary }
	SendPlayerStatsCalls []struct {
		Stats *stats.PlayerSeasonStats
		Query string
	}
	SendPlayerNotFoundCalls []string

	// Spies for format functions
	FormatTeamSummaryResponseFunc    func(summary *stats.TeamSummary) (any, error)
	FormatPlayerStatsResponseFunc    func(playerStats *stats.PlayerSeasonStats, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendTeamSummaryCalls = nil
	m.SendPlayerStatsCalls = nil
	m.SendPlayerNotFoundCalls = nil
}

func (m *Mock) SendResultNotification(record *club.PerformanceRecord, clubName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct {
		Record   *club.PerformanceRecord
		ClubName string
	}{record, clubName})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(record, clubName, dryRun)
	}
	return nil
}

func (m *Mock) SendTeamSummary(summary *stats.TeamSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamSummaryCalls = append(m.SendTeamSummaryCalls, struct{ Summary *stats.TeamSummary }{summary})
	return nil
}

func (m *Mock) SendPlayerStats(playerStats *stats.PlayerSeasonStats, query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerStatsCalls = append(m.SendPlayerStatsCalls, struct {
		Stats *stats.PlayerSeasonStats
		Query string
	}{playerStats, query})
	return nil
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatTeamSummaryResponse(summary *stats.TeamSummary) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatTeamSummaryResponseFunc != nil {
		return m.FormatTeamSummaryResponseFunc(summary)
	}
	return "formatted_team_summary", nil
}

func (m *Mock) FormatPlayerStatsResponse(playerStats *stats.PlayerSeasonStats, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(playerStats, query)
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}
