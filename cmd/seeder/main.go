package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/season"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	id        string
	firstName string
	lastName  string
	birthDate string
	position  club.Position
	teams     []string
}

var opponents = []string{
	"AS Nogaro", "FC Marciac", "US Plaisance", "ES Riscle",
	"FC Vic-Fezensac", "AS Eauze", "US Mirande",
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	players := buildRoster()
	for _, p := range players {
		teamsJSON, _ := json.Marshal(p.teams)
		_, err := db.Exec(
			"INSERT OR IGNORE INTO players (id, first_name, last_name, birth_date, position, teams_json, license_valid, payment_valid) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			p.id, p.firstName, p.lastName, p.birthDate, string(p.position), string(teamsJSON), 1, rand.Intn(2),
		)
		if err != nil {
			log.Fatalf("Failed to insert player %s %s: %s", p.firstName, p.lastName, err)
		}
	}
	log.Info("Ensured roster players exist.", "count", len(players))

	log.Info("Preparing to insert a season of performance records...")
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	const columns = 12
	const batchSize = 100
	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*columns)
	inserted := 0

	flush := func() {
		if len(valueStrings) == 0 {
			return
		}
		stmt := fmt.Sprintf(`
			INSERT INTO performance_records (id, player_id, date, kind, present, season, opponent, location, score_home, score_away, match_type, goals)
			VALUES %s;`, strings.Join(valueStrings, ","))
		if _, err := tx.Exec(stmt, valueArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to execute batch insert: %s", err)
		}
		valueStrings = valueStrings[:0]
		valueArgs = valueArgs[:0]
		log.Info("Inserted batch", "completed", inserted)
	}

	add := func(args ...interface{}) {
		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs, args...)
		inserted++
		if len(valueStrings) == batchSize {
			flush()
		}
	}

	// One season: a match every Sunday and a training every Tuesday and
	// Thursday, September through May.
	seasonStart := time.Date(time.Now().Year()-1, time.September, 1, 0, 0, 0, 0, time.UTC)
	seasonEnd := seasonStart.AddDate(0, 9, 0)

	for day := seasonStart; day.Before(seasonEnd); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format("2006-01-02")
		label := season.FromDate(day)

		switch day.Weekday() {
		case time.Sunday:
			opponent := opponents[rand.Intn(len(opponents))]
			location := club.LocationHome
			if rand.Intn(2) == 0 {
				location = club.LocationAway
			}
			scoreHome := rand.Intn(5)
			scoreAway := rand.Intn(4)
			for _, p := range players {
				present := rand.Float64() < 0.8
				goals := 0
				if present && p.position == club.PositionForward && rand.Float64() < 0.3 {
					goals = 1
				}
				add(uuid.NewString(), p.id, dateStr, string(club.KindMatch), boolToInt(present),
					label, opponent, string(location), scoreHome, scoreAway,
					string(club.MatchTypeChampionship), goals)
			}
		case time.Tuesday, time.Thursday:
			for _, p := range players {
				present := rand.Float64() < 0.6
				add(uuid.NewString(), p.id, dateStr, string(club.KindTraining), boolToInt(present),
					label, nil, nil, nil, nil, nil, 0)
			}
		}
	}
	flush()

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all performance records.", "count", inserted, "duration", duration)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func buildRoster() []seedPlayer {
	firstNames := []string{"Jean", "Paul", "Luc", "Marc", "Pierre", "Louis", "Hugo", "Théo", "Léo", "Max", "Tom", "Noah", "Enzo", "Nathan", "Jules", "Gabin"}
	lastNames := []string{"Martin", "Durand", "Bernard", "Petit", "Robert", "Richard", "Dubois", "Moreau", "Laurent", "Garcia", "Roux", "Fournier", "Girard", "Lambert", "Bonnet", "Fabre"}
	positions := []club.Position{
		club.PositionGoalkeeper, club.PositionDefender, club.PositionDefender, club.PositionDefender,
		club.PositionMidfielder, club.PositionMidfielder, club.PositionMidfielder,
		club.PositionForward, club.PositionForward,
	}

	var players []seedPlayer
	for i := 0; i < len(firstNames); i++ {
		team := "Senior 1"
		if i >= 11 {
			team = "Senior 2"
		}
		birthYear := 1985 + rand.Intn(20)
		players = append(players, seedPlayer{
			id:        uuid.NewString(),
			firstName: firstNames[i],
			lastName:  lastNames[i],
			birthDate: fmt.Sprintf("%d-%02d-%02d", birthYear, 1+rand.Intn(12), 1+rand.Intn(28)),
			position:  positions[i%len(positions)],
			teams:     []string{team},
		})
	}
	return players
}
