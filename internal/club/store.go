package club

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/season"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// SavePlayer inserts a new player or updates an existing one. It only touches
// the roster row: performance records and unavailabilities are managed
// through their own methods.
func (s *store) SavePlayer(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	teamsJSON, err := json.Marshal(p.Teams)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO players (id, first_name, last_name, birth_date, position, teams_json, license_valid, payment_valid, match_attendance_rate, training_attendance_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			birth_date = excluded.birth_date,
			position = excluded.position,
			teams_json = excluded.teams_json,
			license_valid = excluded.license_valid,
			payment_valid = excluded.payment_valid;
	`, p.ID, p.FirstName, p.LastName, p.BirthDate.Format(dateLayout), p.Position, string(teamsJSON),
		p.LicenseValid, p.PaymentValid, p.MatchAttendanceRate, p.TrainingAttendanceRate)
	if err != nil {
		return fmt.Errorf("failed to save player %s: %w", p.ID, err)
	}
	return nil
}

// DeletePlayer removes a player; records and unavailabilities cascade.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	return nil
}

// ListPlayers loads the full roster snapshot, each player with their complete
// performance history and unavailability periods. This is the input boundary
// of the stats engine.
func (s *store) ListPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, first_name, last_name, birth_date, position, teams_json, license_valid, payment_valid, match_attendance_rate, training_attendance_rate
		FROM players ORDER BY last_name, first_name
	`)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := s.scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}

	for i := range players {
		records, err := s.loadRecords(players[i].ID)
		if err != nil {
			return nil, err
		}
		players[i].Records = records

		unavailabilities, err := s.loadUnavailabilities(players[i].ID)
		if err != nil {
			return nil, err
		}
		players[i].Unavailabilities = unavailabilities
	}
	return players, nil
}

// GetPlayer loads one player with their full history.
func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, first_name, last_name, birth_date, position, teams_json, license_valid, payment_valid, match_attendance_rate, training_attendance_rate
		FROM players WHERE id = ?
	`, playerID)

	p, err := s.scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %s not found", playerID)
		}
		return nil, fmt.Errorf("failed to load player %s: %w", playerID, err)
	}

	if p.Records, err = s.loadRecords(p.ID); err != nil {
		return nil, err
	}
	if p.Unavailabilities, err = s.loadUnavailabilities(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// scanPlayer scans a single roster row.
func (s *store) scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var birthDate string
	var teamsJSON sql.NullString

	err := scanner.Scan(
		&p.ID, &p.FirstName, &p.LastName, &birthDate, &p.Position, &teamsJSON,
		&p.LicenseValid, &p.PaymentValid, &p.MatchAttendanceRate, &p.TrainingAttendanceRate,
	)
	if err != nil {
		return nil, err
	}

	if birthDate != "" {
		if p.BirthDate, err = time.Parse(dateLayout, birthDate); err != nil {
			log.Error("Failed to parse birth date", "error", err, "playerID", p.ID)
		}
	}

	p.Teams = []string{}
	if teamsJSON.Valid && teamsJSON.String != "" {
		if err := json.Unmarshal([]byte(teamsJSON.String), &p.Teams); err != nil {
			log.Error("Failed to unmarshal teams_json", "error", err, "playerID", p.ID)
		}
	}
	return &p, nil
}

// AddPerformanceRecord appends a record to a player's history. The season
// label is assigned from the date at creation time if not already set.
func (s *store) AddPerformanceRecord(playerID string, rec *PerformanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Season == "" {
		rec.Season = season.FromDate(rec.Date)
	}
	if rec.ProcessingStatus == "" {
		rec.ProcessingStatus = StatusNew
	}
	return s.upsertRecord(playerID, rec)
}

// UpdatePerformanceRecord rewrites an existing record (match edit form).
func (s *store) UpdatePerformanceRecord(playerID string, rec *PerformanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		return fmt.Errorf("cannot update a record without an id")
	}
	if rec.Season == "" {
		rec.Season = season.FromDate(rec.Date)
	}
	return s.upsertRecord(playerID, rec)
}

func (s *store) upsertRecord(playerID string, rec *PerformanceRecord) error {
	scorersJSON, err := json.Marshal(rec.Scorers)
	if err != nil {
		return err
	}
	assistersJSON, err := json.Marshal(rec.Assisters)
	if err != nil {
		return err
	}
	concededJSON, err := json.Marshal(rec.ConcededMinutes)
	if err != nil {
		return err
	}

	var scoreHome, scoreAway any
	if rec.ScoreHome != nil {
		scoreHome = *rec.ScoreHome
	}
	if rec.ScoreAway != nil {
		scoreAway = *rec.ScoreAway
	}

	_, err = s.db.Exec(`
		INSERT INTO performance_records (id, player_id, date, kind, present, season, opponent, location, score_home, score_away, match_type, minutes_played, goals, assists, yellow_cards, red_cards, clean_sheet, scorers_json, assisters_json, conceded_json, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			kind = excluded.kind,
			present = excluded.present,
			season = excluded.season,
			opponent = excluded.opponent,
			location = excluded.location,
			score_home = excluded.score_home,
			score_away = excluded.score_away,
			match_type = excluded.match_type,
			minutes_played = excluded.minutes_played,
			goals = excluded.goals,
			assists = excluded.assists,
			yellow_cards = excluded.yellow_cards,
			red_cards = excluded.red_cards,
			clean_sheet = excluded.clean_sheet,
			scorers_json = excluded.scorers_json,
			assisters_json = excluded.assisters_json,
			conceded_json = excluded.conceded_json;
	`, rec.ID, playerID, rec.Date.Format(dateLayout), rec.Kind, rec.Present, rec.Season,
		rec.Opponent, rec.Location, scoreHome, scoreAway, rec.MatchType,
		rec.MinutesPlayed, rec.Goals, rec.Assists, rec.YellowCards, rec.RedCards, rec.CleanSheet,
		string(scorersJSON), string(assistersJSON), string(concededJSON), StatusNew)
	if err != nil {
		return fmt.Errorf("failed to save performance record %s: %w", rec.ID, err)
	}
	return nil
}

func (s *store) DeletePerformanceRecord(playerID, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM performance_records WHERE id = ? AND player_id = ?", recordID, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete performance record %s: %w", recordID, err)
	}
	return nil
}

func (s *store) loadRecords(playerID string) ([]PerformanceRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, kind, present, season, opponent, location, score_home, score_away, match_type, minutes_played, goals, assists, yellow_cards, red_cards, clean_sheet, scorers_json, assisters_json, conceded_json, processing_status
		FROM performance_records WHERE player_id = ? ORDER BY date
	`, playerID)
	if err != nil {
		log.Error("Failed to query performance records", "error", err, "playerID", playerID)
		return nil, err
	}
	defer rows.Close()

	records := []PerformanceRecord{}
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan performance record row", "error", err, "playerID", playerID)
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

// scanRecord is a helper to scan a single performance record row.
func (s *store) scanRecord(scanner interface{ Scan(...any) error }) (*PerformanceRecord, error) {
	var rec PerformanceRecord
	var recDate string
	var opponent, location, matchType, scorersJSON, assistersJSON, concededJSON sql.NullString
	var scoreHome, scoreAway sql.NullInt64

	err := scanner.Scan(
		&rec.ID, &recDate, &rec.Kind, &rec.Present, &rec.Season,
		&opponent, &location, &scoreHome, &scoreAway, &matchType,
		&rec.MinutesPlayed, &rec.Goals, &rec.Assists, &rec.YellowCards, &rec.RedCards, &rec.CleanSheet,
		&scorersJSON, &assistersJSON, &concededJSON, &rec.ProcessingStatus,
	)
	if err != nil {
		return nil, err
	}

	if rec.Date, err = time.Parse(dateLayout, recDate); err != nil {
		return nil, err
	}
	rec.Opponent = opponent.String
	rec.Location = Location(location.String)
	rec.MatchType = MatchType(matchType.String)
	if scoreHome.Valid {
		v := int(scoreHome.Int64)
		rec.ScoreHome = &v
	}
	if scoreAway.Valid {
		v := int(scoreAway.Int64)
		rec.ScoreAway = &v
	}

	if scorersJSON.Valid && scorersJSON.String != "" {
		if err := json.Unmarshal([]byte(scorersJSON.String), &rec.Scorers); err != nil {
			log.Error("Failed to unmarshal scorers_json", "error", err, "recordID", rec.ID)
		}
	}
	if assistersJSON.Valid && assistersJSON.String != "" {
		if err := json.Unmarshal([]byte(assistersJSON.String), &rec.Assisters); err != nil {
			log.Error("Failed to unmarshal assisters_json", "error", err, "recordID", rec.ID)
		}
	}
	if concededJSON.Valid && concededJSON.String != "" {
		if err := json.Unmarshal([]byte(concededJSON.String), &rec.ConcededMinutes); err != nil {
			log.Error("Failed to unmarshal conceded_json", "error", err, "recordID", rec.ID)
		}
	}
	return &rec, nil
}

// AddUnavailability records an unavailability period for a player.
func (s *store) AddUnavailability(playerID string, u *Unavailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO unavailabilities (id, player_id, start_date, end_date, type, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, playerID, u.StartDate.Format(dateLayout), u.EndDate.Format(dateLayout), u.Type, u.Reason)
	if err != nil {
		return fmt.Errorf("failed to add unavailability for player %s: %w", playerID, err)
	}
	return nil
}

func (s *store) DeleteUnavailability(playerID, unavailabilityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM unavailabilities WHERE id = ? AND player_id = ?", unavailabilityID, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete unavailability %s: %w", unavailabilityID, err)
	}
	return nil
}

func (s *store) loadUnavailabilities(playerID string) ([]Unavailability, error) {
	rows, err := s.db.Query(`
		SELECT id, start_date, end_date, type, reason
		FROM unavailabilities WHERE player_id = ? ORDER BY start_date
	`, playerID)
	if err != nil {
		log.Error("Failed to query unavailabilities", "error", err, "playerID", playerID)
		return nil, err
	}
	defer rows.Close()

	unavailabilities := []Unavailability{}
	for rows.Next() {
		var u Unavailability
		var start, end string
		var uType, reason sql.NullString
		if err := rows.Scan(&u.ID, &start, &end, &uType, &reason); err != nil {
			log.Error("Failed to scan unavailability row", "error", err, "playerID", playerID)
			continue
		}
		if u.StartDate, err = time.Parse(dateLayout, start); err != nil {
			log.Error("Failed to parse unavailability start date", "error", err, "id", u.ID)
			continue
		}
		if u.EndDate, err = time.Parse(dateLayout, end); err != nil {
			log.Error("Failed to parse unavailability end date", "error", err, "id", u.ID)
			continue
		}
		u.Type = uType.String
		u.Reason = reason.String
		unavailabilities = append(unavailabilities, u)
	}
	return unavailabilities, nil
}

// UpdateAttendanceCache persists the recomputed all-time attendance rates on
// the player row. These are the zero-denominator fallbacks for the season
// rate calculator.
func (s *store) UpdateAttendanceCache(playerID string, matchRate, trainingRate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE players SET match_attendance_rate = ?, training_attendance_rate = ? WHERE id = ?",
		matchRate, trainingRate, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance cache for player %s: %w", playerID, err)
	}
	return nil
}

// GetRecordsForProcessing retrieves all records that are not yet in a
// completed state, oldest first.
func (s *store) GetRecordsForProcessing() ([]PendingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT r.player_id, p.first_name, p.last_name,
			r.id, r.date, r.kind, r.present, r.season, r.opponent, r.location, r.score_home, r.score_away, r.match_type, r.minutes_played, r.goals, r.assists, r.yellow_cards, r.red_cards, r.clean_sheet, r.scorers_json, r.assisters_json, r.conceded_json, r.processing_status
		FROM performance_records r
		JOIN players p ON r.player_id = p.id
		WHERE r.processing_status != ?
		ORDER BY r.date
	`, StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []PendingRecord
	for rows.Next() {
		var playerID, firstName, lastName string
		var rec PerformanceRecord
		var recDate string
		var opponent, location, matchType, scorersJSON, assistersJSON, concededJSON sql.NullString
		var scoreHome, scoreAway sql.NullInt64

		err := rows.Scan(
			&playerID, &firstName, &lastName,
			&rec.ID, &recDate, &rec.Kind, &rec.Present, &rec.Season,
			&opponent, &location, &scoreHome, &scoreAway, &matchType,
			&rec.MinutesPlayed, &rec.Goals, &rec.Assists, &rec.YellowCards, &rec.RedCards, &rec.CleanSheet,
			&scorersJSON, &assistersJSON, &concededJSON, &rec.ProcessingStatus,
		)
		if err != nil {
			log.Error("Failed to scan pending record row", "error", err)
			continue
		}
		if rec.Date, err = time.Parse(dateLayout, recDate); err != nil {
			log.Error("Failed to parse pending record date", "error", err, "recordID", rec.ID)
			continue
		}
		rec.Opponent = opponent.String
		rec.Location = Location(location.String)
		rec.MatchType = MatchType(matchType.String)
		if scoreHome.Valid {
			v := int(scoreHome.Int64)
			rec.ScoreHome = &v
		}
		if scoreAway.Valid {
			v := int(scoreAway.Int64)
			rec.ScoreAway = &v
		}

		pending = append(pending, PendingRecord{
			PlayerID:   playerID,
			PlayerName: Player{FirstName: firstName, LastName: lastName}.FullName(),
			Record:     rec,
		})
	}
	return pending, nil
}

// UpdateRecordProcessingStatus transitions a record to a new lifecycle state.
func (s *store) UpdateRecordProcessingStatus(recordID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE performance_records SET processing_status = ? WHERE id = ?", status, recordID)
	return err
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"unavailabilities", "performance_records", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
