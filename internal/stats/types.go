// Package stats is the season statistics engine. It is pure computation over
// an in-memory roster snapshot: it reconciles the per-player performance
// records into canonical team events, folds per-player season totals, derives
// attendance rates and rolls everything up into team summaries. It performs
// no I/O and never fails; missing data degrades to zeros, placeholders or the
// documented fallbacks so the dashboards always have something to render.
package stats

import (
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
)

// EventFilter selects which performance records feed the event reconciler.
// Zero values mean "no filtering" for that dimension; MatchTypeAll is
// equivalent to an empty MatchType.
type EventFilter struct {
	Kind      club.EventKind
	Season    string
	Team      string
	MatchType club.MatchType
}

// TeamEvent is the canonical, deduplicated representation of one real match
// or training session, reconstructed from the per-player records. Derived
// only, never persisted.
type TeamEvent struct {
	Kind      club.EventKind `json:"kind"`
	Date      time.Time      `json:"date"`
	Season    string         `json:"season"`
	Opponent  string         `json:"opponent,omitempty"`
	MatchType club.MatchType `json:"match_type,omitempty"`
}

// SeasonTotals are the raw per-player counters for one season, before
// attendance rates are derived.
type SeasonTotals struct {
	TotalMatches     int `json:"total_matches"`
	PresentMatches   int `json:"present_matches"`
	TotalMinutes     int `json:"total_minutes"`
	Goals            int `json:"goals"`
	Assists          int `json:"assists"`
	YellowCards      int `json:"yellow_cards"`
	RedCards         int `json:"red_cards"`
	CleanSheets      int `json:"clean_sheets"`
	PresentTrainings int `json:"present_trainings"`
}

// Rates are season attendance percentages in [0,100] under normal data.
// Malformed input can push them above 100; that is surfaced, not clamped.
type Rates struct {
	MatchAttendanceRateSeason    float64 `json:"match_attendance_rate_season"`
	TrainingAttendanceRateSeason float64 `json:"training_attendance_rate_season"`
}

// RateFallback carries the player's cached all-time rates, used when a season
// has no events to divide by.
type RateFallback struct {
	Match    float64
	Training float64
}

// PlayerSeasonStats is the full per-player, per-season statistics block
// consumed by the ranking and dashboard views.
type PlayerSeasonStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Season     string `json:"season"`
	SeasonTotals
	Rates
}

// TeamSummary is the team-wide rollup for one season.
type TeamSummary struct {
	Team                      string  `json:"team,omitempty"`
	Season                    string  `json:"season"`
	TotalPlayers              int     `json:"total_players"`
	AverageAge                float64 `json:"average_age"`
	TotalGoals                int     `json:"total_goals"`
	TotalMatches              int     `json:"total_matches"`
	TotalTrainings            int     `json:"total_trainings"`
	AverageMatchAttendance    float64 `json:"average_match_attendance"`
	AverageTrainingAttendance float64 `json:"average_training_attendance"`
}
