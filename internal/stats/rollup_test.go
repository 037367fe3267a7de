package stats_test

import (
	"testing"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupTeam_EventCountsNotSums(t *testing.T) {
	// Eleven players each logged the same match: totalMatches for the team is
	// 1, not 11.
	match := matchRecord("m1", date(2024, time.September, 1), "FC Test", 2, 1)
	training := trainingRecord("t1", date(2024, time.September, 3))
	var players []club.Player
	for i := 0; i < 11; i++ {
		players = append(players, club.Player{
			ID:      string(rune('a' + i)),
			Teams:   []string{"Seniors 1"},
			Records: []club.PerformanceRecord{match, training},
		})
	}

	summary := stats.RollupTeam(players, "2024-2025", "Seniors 1")
	assert.Equal(t, 11, summary.TotalPlayers)
	assert.Equal(t, 1, summary.TotalMatches)
	assert.Equal(t, 1, summary.TotalTrainings)
}

func TestRollupTeam_GoalsAndAverages(t *testing.T) {
	m := matchRecord("m1", date(2024, time.September, 1), "FC Test", 3, 1)
	scorer := m
	scorer.Goals = 2
	sub := m
	sub.Goals = 1

	players := []club.Player{
		{ID: "p1", Teams: []string{"Seniors 1"}, Records: []club.PerformanceRecord{scorer}},
		{ID: "p2", Teams: []string{"Seniors 1"}, Records: []club.PerformanceRecord{sub}},
	}

	summary := stats.RollupTeam(players, "2024-2025", "Seniors 1")
	assert.Equal(t, 3, summary.TotalGoals)
	assert.InDelta(t, 100.0, summary.AverageMatchAttendance, 0.001)
}

func TestRollupTeam_EmptyRoster(t *testing.T) {
	summary := stats.RollupTeam(nil, "2024-2025", "Seniors 1")
	assert.Zero(t, summary.TotalPlayers)
	assert.Zero(t, summary.AverageAge)
	assert.Zero(t, summary.AverageMatchAttendance)
}

func TestTeamDistribution_NormalizesStaffTags(t *testing.T) {
	players := []club.Player{
		{ID: "p1", Teams: []string{"Dirigeant"}},
		{ID: "p2", Teams: []string{"Dirigeant/Dirigeante"}},
		{ID: "p3", Teams: []string{"Dirigeant / Dirigeante"}},
		{ID: "p4", Teams: []string{"Seniors 1"}},
	}

	dist := stats.TeamDistribution(players)
	assert.Equal(t, 3, dist["Dirigeant/Dirigeante"])
	assert.Equal(t, 1, dist["Seniors 1"])
	assert.Len(t, dist, 2)
}

func TestLicenseIssues(t *testing.T) {
	players := []club.Player{
		{ID: "p1", LicenseValid: true, PaymentValid: true},
		{ID: "p2", LicenseValid: false, PaymentValid: true},
		{ID: "p3", LicenseValid: true, PaymentValid: false},
	}

	flagged := stats.LicenseIssues(players)
	require.Len(t, flagged, 2)
	assert.Equal(t, "p2", flagged[0].ID)
	assert.Equal(t, "p3", flagged[1].ID)
}

// Two players, one shared match: the end to end scenario across reconciler,
// aggregator, rate calculator and rollup.
func TestSeasonPipeline_EndToEnd(t *testing.T) {
	shared := matchRecord("m1", date(2024, time.September, 1), "FC Test", 2, 1)

	playerA := club.Player{ID: "a", FirstName: "Alice", Teams: []string{"Seniors 1"}, Records: []club.PerformanceRecord{shared}}
	playerB := club.Player{ID: "b", FirstName: "Bruno", Teams: []string{"Seniors 1", "Seniors 2"}, Records: []club.PerformanceRecord{shared}}
	all := []club.Player{playerA, playerB}

	events := stats.ReconcileEvents(all, stats.EventFilter{Kind: club.KindMatch, Team: "Seniors 1", Season: "2024-2025"})
	require.Len(t, events, 1)

	for _, p := range all {
		ps := stats.ComputePlayerSeason(p, all, "2024-2025")
		assert.InDelta(t, 100.0, ps.MatchAttendanceRateSeason, 0.001, "player %s", p.ID)
	}

	summary := stats.RollupTeam(all, "2024-2025", "Seniors 1")
	assert.Equal(t, 1, summary.TotalMatches)
}
