package club

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// store handles all database operations for the club roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Position is a player's position on the pitch. The values are the French
// labels used throughout the club's data entry forms.
type Position string

const (
	PositionGoalkeeper Position = "Gardien"
	PositionDefender   Position = "Défenseur"
	PositionMidfielder Position = "Milieu"
	PositionForward    Position = "Attaquant"
)

// EventKind distinguishes the two kinds of logged events.
type EventKind string

const (
	KindTraining EventKind = "training"
	KindMatch    EventKind = "match"
)

// Location says where a match was played.
type Location string

const (
	LocationHome Location = "home"
	LocationAway Location = "away"
)

// MatchType is the competition a match belongs to.
type MatchType string

const (
	// MatchTypeAll is the sentinel used by filters to mean "every competition".
	MatchTypeAll            MatchType = "Tous"
	MatchTypeChampionship   MatchType = "Championnat"
	MatchTypeCoupeDeFrance  MatchType = "Coupe de France"
	MatchTypeCoupeOccitanie MatchType = "Coupe Occitanie"
	MatchTypeCoupeDuGers    MatchType = "Coupe du Gers"
	MatchTypeChallenge      MatchType = "Challenge District"
	MatchTypeFriendly       MatchType = "Amical"
)

// ProcessingStatus is the internal lifecycle state of a performance record
// after data entry, used by the processor to drive notifications and the
// attendance-cache refresh.
type ProcessingStatus string

const (
	StatusNew            ProcessingStatus = "NEW"
	StatusResultNotified ProcessingStatus = "RESULT_NOTIFIED"
	StatusRatesRefreshed ProcessingStatus = "RATES_REFRESHED"
	StatusCompleted      ProcessingStatus = "COMPLETED"
)

// GoalDetail itemizes one goal: who scored it and when.
type GoalDetail struct {
	PlayerID string `json:"player_id"`
	Minute   int    `json:"minute"`
}

// AssistDetail itemizes one assist.
type AssistDetail struct {
	PlayerID string `json:"player_id"`
}

// CardDetail itemizes one card holder.
type CardDetail struct {
	PlayerID string `json:"player_id"`
}

// PerformanceRecord is one player's logged attendance/statistics for one
// training session or match. Match identity is not carried by a shared event
// id: every rostered player gets their own record for the same real-world
// match, and the stats engine reconciles them by value equality.
type PerformanceRecord struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Kind    EventKind `json:"kind"`
	Present bool      `json:"present"`
	Season  string    `json:"season"`

	// Match-only fields. Opponent/Location may be empty and scores nil when
	// the result was not filled in; the stats engine substitutes stable
	// placeholders instead of failing.
	Opponent  string    `json:"opponent,omitempty"`
	Location  Location  `json:"location,omitempty"`
	ScoreHome *int      `json:"score_home,omitempty"`
	ScoreAway *int      `json:"score_away,omitempty"`
	MatchType MatchType `json:"match_type,omitempty"`

	MinutesPlayed int  `json:"minutes_played"`
	Goals         int  `json:"goals"`
	Assists       int  `json:"assists"`
	YellowCards   int  `json:"yellow_cards"`
	RedCards      int  `json:"red_cards"`
	CleanSheet    bool `json:"clean_sheet"`

	Scorers         []GoalDetail   `json:"scorers,omitempty"`
	Assisters       []AssistDetail `json:"assisters,omitempty"`
	YellowCardList  []CardDetail   `json:"yellow_card_list,omitempty"`
	RedCardList     []CardDetail   `json:"red_card_list,omitempty"`
	ConcededMinutes []int          `json:"conceded_minutes,omitempty"`

	ProcessingStatus ProcessingStatus `json:"-"`
}

// Unavailability is a period during which a player is unavailable (injury,
// work, suspension). Informational only: it never suppresses logged stats.
type Unavailability struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
}

// Player is a roster entry with its full performance history.
type Player struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	BirthDate    time.Time `json:"birth_date"`
	Position     Position  `json:"position"`
	Teams        []string  `json:"teams"`
	LicenseValid bool      `json:"license_valid"`
	PaymentValid bool      `json:"payment_valid"`

	// Cached all-time attendance rates, maintained by the processor. The
	// season-scoped rate calculator falls back to these when a season has no
	// logged events yet.
	MatchAttendanceRate    float64 `json:"match_attendance_rate"`
	TrainingAttendanceRate float64 `json:"training_attendance_rate"`

	Records          []PerformanceRecord `json:"records"`
	Unavailabilities []Unavailability    `json:"unavailabilities"`
}

// FullName returns the player's display name.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// HasTeam reports whether the player belongs to the given team tag.
func (p Player) HasTeam(team string) bool {
	for _, t := range p.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// PendingRecord pairs a not-yet-fully-processed performance record with the
// player it belongs to.
type PendingRecord struct {
	PlayerID   string
	PlayerName string
	Record     PerformanceRecord
}
