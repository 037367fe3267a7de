package stats

import "github.com/MrVince17/footmanager-aignan-sub000/internal/club"

// AggregatePlayerSeason folds one player's performance records for one season
// into cumulative counters. It is a pure fold with no ordering dependency:
// only records marked present count, and a record marked absent contributes
// nothing even if its stat fields are non-zero (it logs an absence, not a
// cancelled event).
func AggregatePlayerSeason(p club.Player, seasonLabel string) SeasonTotals {
	var t SeasonTotals
	for _, r := range p.Records {
		r = SanitizeRecord(r)
		if r.Season != seasonLabel || !r.Present {
			continue
		}
		switch r.Kind {
		case club.KindMatch:
			t.TotalMatches++
			t.PresentMatches++
			t.TotalMinutes += r.MinutesPlayed
			t.Goals += r.Goals
			t.Assists += r.Assists
			t.YellowCards += r.YellowCards
			t.RedCards += r.RedCards
			// Clean sheets only ever accrue to the goalkeeper, whatever the
			// flag says on other players' records.
			if r.CleanSheet && p.Position == club.PositionGoalkeeper {
				t.CleanSheets++
			}
		case club.KindTraining:
			t.PresentTrainings++
		}
	}
	return t
}

// ComputePlayerSeason assembles the full per-player season block: the raw
// counters plus attendance rates derived against the whole roster's
// reconciled events. The player's cached all-time rates serve as the
// zero-denominator fallback.
func ComputePlayerSeason(p club.Player, allPlayers []club.Player, seasonLabel string) PlayerSeasonStats {
	totals := AggregatePlayerSeason(p, seasonLabel)
	rates := ComputeAttendanceRates(p, totals, allPlayers, seasonLabel, RateFallback{
		Match:    p.MatchAttendanceRate,
		Training: p.TrainingAttendanceRate,
	})
	return PlayerSeasonStats{
		PlayerID:     p.ID,
		PlayerName:   p.FullName(),
		Season:       seasonLabel,
		SeasonTotals: totals,
		Rates:        rates,
	}
}
