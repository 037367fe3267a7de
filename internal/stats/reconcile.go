package stats

import (
	"strconv"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/season"
)

// Placeholders keep records with an unfinished result form on a stable
// identity key instead of crashing the reconciler. Two "unknown" matches on
// different dates stay distinct because the date is always part of the key.
const (
	UnknownOpponent = "UnknownOpponent"
	UnknownLocation = "unknownLocation"
	UnknownScore    = "N/A"
)

const dateKeyLayout = "2006-01-02"

// eventKey is the value-equality identity of one real-world event. A struct
// key rather than concatenated strings, so opponent names can never collide
// with a delimiter.
type eventKey struct {
	season    string
	date      string
	opponent  string
	location  string
	scoreHome string
	scoreAway string
}

func matchKey(r club.PerformanceRecord) eventKey {
	return eventKey{
		season:    r.Season,
		date:      r.Date.Format(dateKeyLayout),
		opponent:  opponentOrPlaceholder(r.Opponent),
		location:  locationOrPlaceholder(r.Location),
		scoreHome: scoreOrPlaceholder(r.ScoreHome),
		scoreAway: scoreOrPlaceholder(r.ScoreAway),
	}
}

func trainingKey(r club.PerformanceRecord) eventKey {
	return eventKey{season: r.Season, date: r.Date.Format(dateKeyLayout)}
}

func opponentOrPlaceholder(opponent string) string {
	if opponent == "" {
		return UnknownOpponent
	}
	return opponent
}

func locationOrPlaceholder(loc club.Location) string {
	if loc == "" {
		return UnknownLocation
	}
	return string(loc)
}

func scoreOrPlaceholder(score *int) string {
	if score == nil {
		return UnknownScore
	}
	return strconv.Itoa(*score)
}

// SanitizeRecord is the single normalization point for raw records entering
// the engine: a missing season label is rederived from the date and nil
// detail lists become empty. Numeric fields already default to zero.
func SanitizeRecord(r club.PerformanceRecord) club.PerformanceRecord {
	if r.Season == "" {
		r.Season = season.FromDate(r.Date)
	}
	if r.Scorers == nil {
		r.Scorers = []club.GoalDetail{}
	}
	if r.Assisters == nil {
		r.Assisters = []club.AssistDetail{}
	}
	if r.ConcededMinutes == nil {
		r.ConcededMinutes = []int{}
	}
	return r
}

// ReconcileEvents groups the raw per-player performance records of the whole
// roster into canonical team events, one per distinct real-world match or
// training session. N players attending the same match each carry their own
// record; the first record observed for an identity key determines the
// event's displayed attributes and the rest collapse into it. The returned
// slice length is the primary consumed quantity: how many distinct events
// this team/season had.
func ReconcileEvents(players []club.Player, f EventFilter) []TeamEvent {
	seen := make(map[eventKey]struct{})
	var events []TeamEvent

	for _, p := range players {
		if f.Team != "" && !p.HasTeam(f.Team) {
			continue
		}
		for _, r := range p.Records {
			if r.Kind != f.Kind {
				continue
			}
			r = SanitizeRecord(r)
			if f.Season != "" && r.Season != f.Season {
				continue
			}
			if f.Kind == club.KindMatch && f.MatchType != "" && f.MatchType != club.MatchTypeAll && r.MatchType != f.MatchType {
				continue
			}

			var key eventKey
			if f.Kind == club.KindMatch {
				key = matchKey(r)
			} else {
				key = trainingKey(r)
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			events = append(events, TeamEvent{
				Kind:      r.Kind,
				Date:      r.Date,
				Season:    r.Season,
				Opponent:  r.Opponent,
				MatchType: r.MatchType,
			})
		}
	}
	return events
}
