package stats

import "github.com/MrVince17/footmanager-aignan-sub000/internal/club"

// matchDenomKey identifies a match for attendance-denominator purposes. It is
// deliberately coarser than the reconciler's full key: a match shared between
// two of the player's teams must count once in the union.
type matchDenomKey struct {
	date     string
	opponent string
}

// ComputeAttendanceRates derives the two season attendance percentages for a
// player.
//
// The training denominator is the club-wide (team-unscoped) training event
// count for the season. The match denominator is the union, across every team
// the player belongs to, of that team's match event keys (date + opponent):
// a player on two squads owes attendance to each squad's matches, but a match
// shared between squads counts once.
//
// A zero denominator falls back to the caller-supplied cached all-time rate
// instead of reporting 0% or NaN, so a freshly started season does not
// misleadingly zero everyone out.
func ComputeAttendanceRates(p club.Player, totals SeasonTotals, allPlayers []club.Player, seasonLabel string, fallback RateFallback) Rates {
	var rates Rates

	trainings := len(ReconcileEvents(allPlayers, EventFilter{Kind: club.KindTraining, Season: seasonLabel}))
	if trainings == 0 {
		rates.TrainingAttendanceRateSeason = fallback.Training
	} else {
		rates.TrainingAttendanceRateSeason = float64(totals.PresentTrainings) / float64(trainings) * 100
	}

	union := make(map[matchDenomKey]struct{})
	for _, team := range p.Teams {
		events := ReconcileEvents(allPlayers, EventFilter{Kind: club.KindMatch, Season: seasonLabel, Team: team})
		for _, ev := range events {
			union[matchDenomKey{
				date:     ev.Date.Format(dateKeyLayout),
				opponent: opponentOrPlaceholder(ev.Opponent),
			}] = struct{}{}
		}
	}
	if len(union) == 0 {
		rates.MatchAttendanceRateSeason = fallback.Match
	} else {
		rates.MatchAttendanceRateSeason = float64(totals.PresentMatches) / float64(len(union)) * 100
	}

	return rates
}

// AllTimeRates computes a player's attendance rates over their entire record
// history, with the same team-union denominator rules but no season scoping.
// The processor persists these onto the player as the fallback cache; with no
// events at all the rates are simply 0.
func AllTimeRates(p club.Player, allPlayers []club.Player) Rates {
	var rates Rates

	var presentMatches, presentTrainings int
	for _, r := range p.Records {
		if !r.Present {
			continue
		}
		switch r.Kind {
		case club.KindMatch:
			presentMatches++
		case club.KindTraining:
			presentTrainings++
		}
	}

	trainings := len(ReconcileEvents(allPlayers, EventFilter{Kind: club.KindTraining}))
	if trainings > 0 {
		rates.TrainingAttendanceRateSeason = float64(presentTrainings) / float64(trainings) * 100
	}

	union := make(map[matchDenomKey]struct{})
	for _, team := range p.Teams {
		for _, ev := range ReconcileEvents(allPlayers, EventFilter{Kind: club.KindMatch, Team: team}) {
			union[matchDenomKey{
				date:     ev.Date.Format(dateKeyLayout),
				opponent: opponentOrPlaceholder(ev.Opponent),
			}] = struct{}{}
		}
	}
	if len(union) > 0 {
		rates.MatchAttendanceRateSeason = float64(presentMatches) / float64(len(union)) * 100
	}

	return rates
}
