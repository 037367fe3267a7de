package stats

import (
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
)

// Team tags that all mean the club's staff bucket. Historical data entry
// produced three spellings; the distribution folds them into one.
const canonicalStaffTag = "Dirigeant/Dirigeante"

var staffTagVariants = map[string]bool{
	"Dirigeant":              true,
	"Dirigeant/Dirigeante":   true,
	"Dirigeant / Dirigeante": true,
}

// RollupTeam combines the whole roster's season aggregates into the team-wide
// summary the dashboard renders. TotalMatches and TotalTrainings are the
// reconciler's deduplicated team-scoped event counts, not sums of per-player
// counters: a team played N matches regardless of roster size. The attendance
// averages are plain means of the players' already-computed season rates.
func RollupTeam(players []club.Player, seasonLabel, team string) TeamSummary {
	summary := TeamSummary{Team: team, Season: seasonLabel}

	var filtered []club.Player
	for _, p := range players {
		if team == "" || p.HasTeam(team) {
			filtered = append(filtered, p)
		}
	}
	summary.TotalPlayers = len(filtered)
	summary.AverageAge = averageAge(filtered, time.Now().Year())

	var sumMatchRate, sumTrainingRate float64
	for _, p := range filtered {
		ps := ComputePlayerSeason(p, players, seasonLabel)
		summary.TotalGoals += ps.Goals
		sumMatchRate += ps.MatchAttendanceRateSeason
		sumTrainingRate += ps.TrainingAttendanceRateSeason
	}
	if len(filtered) > 0 {
		summary.AverageMatchAttendance = sumMatchRate / float64(len(filtered))
		summary.AverageTrainingAttendance = sumTrainingRate / float64(len(filtered))
	}

	summary.TotalMatches = len(ReconcileEvents(players, EventFilter{Kind: club.KindMatch, Season: seasonLabel, Team: team}))
	summary.TotalTrainings = len(ReconcileEvents(players, EventFilter{Kind: club.KindTraining, Season: seasonLabel, Team: team}))

	return summary
}

// averageAge is the mean of currentYear - birthYear over the players: the
// "age this season" convention, not exact birthday-aware age. 0 for an empty
// roster.
func averageAge(players []club.Player, currentYear int) float64 {
	if len(players) == 0 {
		return 0
	}
	var sum int
	for _, p := range players {
		sum += currentYear - p.BirthDate.Year()
	}
	return float64(sum) / float64(len(players))
}

// LicenseIssues lists the players with an invalid license or unpaid dues.
// Season-independent.
func LicenseIssues(players []club.Player) []club.Player {
	var flagged []club.Player
	for _, p := range players {
		if !p.LicenseValid || !p.PaymentValid {
			flagged = append(flagged, p)
		}
	}
	return flagged
}

// TeamDistribution counts players per team tag, folding the historical
// spellings of the staff tag into the canonical one before counting.
func TeamDistribution(players []club.Player) map[string]int {
	dist := make(map[string]int)
	for _, p := range players {
		for _, tag := range p.Teams {
			dist[NormalizeTeamTag(tag)]++
		}
	}
	return dist
}

// NormalizeTeamTag maps known staff-tag variants onto the canonical spelling
// and leaves every other tag untouched.
func NormalizeTeamTag(tag string) string {
	if staffTagVariants[tag] {
		return canonicalStaffTag
	}
	return tag
}
