package club_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	return store, db, dbTeardown
}

func intPtr(v int) *int { return &v }

func testPlayer(id string) *club.Player {
	return &club.Player{
		ID:           id,
		FirstName:    "Jean",
		LastName:     "Dupont",
		BirthDate:    time.Date(1998, time.May, 12, 0, 0, 0, 0, time.UTC),
		Position:     club.PositionMidfielder,
		Teams:        []string{"Seniors 1"},
		LicenseValid: true,
		PaymentValid: true,
	}
}

func TestSaveAndListPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p1 := testPlayer("p1")
	p2 := testPlayer("p2")
	p2.FirstName = "Ana"
	p2.LastName = "Bernard"
	require.NoError(t, store.SavePlayer(p1))
	require.NoError(t, store.SavePlayer(p2))

	players, err := store.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	// Ordered by last name.
	assert.Equal(t, "p2", players[0].ID)
	assert.Equal(t, "p1", players[1].ID)
	assert.Equal(t, []string{"Seniors 1"}, players[1].Teams)
	assert.Equal(t, 1998, players[1].BirthDate.Year())
}

func TestSavePlayer_AssignsIDAndUpserts(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := testPlayer("")
	require.NoError(t, store.SavePlayer(p))
	require.NotEmpty(t, p.ID)

	p.Position = club.PositionGoalkeeper
	require.NoError(t, store.SavePlayer(p))

	loaded, err := store.GetPlayer(p.ID)
	require.NoError(t, err)
	assert.Equal(t, club.PositionGoalkeeper, loaded.Position)
}

func TestPerformanceRecordRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	p := testPlayer("p1")
	require.NoError(t, store.SavePlayer(p))

	rec := &club.PerformanceRecord{
		Date:          time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		Kind:          club.KindMatch,
		Present:       true,
		Opponent:      "FC Test",
		Location:      club.LocationHome,
		ScoreHome:     intPtr(2),
		ScoreAway:     intPtr(1),
		MatchType:     club.MatchTypeChampionship,
		MinutesPlayed: 90,
		Goals:         1,
		Scorers:       []club.GoalDetail{{PlayerID: "p1", Minute: 55}},
	}
	require.NoError(t, store.AddPerformanceRecord("p1", rec))
	require.NotEmpty(t, rec.ID)
	// Season label is derived from the date at creation.
	assert.Equal(t, "2024-2025", rec.Season)

	loaded, err := store.GetPlayer("p1")
	require.NoError(t, err)
	require.Len(t, loaded.Records, 1)
	got := loaded.Records[0]
	assert.Equal(t, "FC Test", got.Opponent)
	require.NotNil(t, got.ScoreHome)
	assert.Equal(t, 2, *got.ScoreHome)
	assert.Equal(t, club.StatusNew, got.ProcessingStatus)
	require.Len(t, got.Scorers, 1)
	assert.Equal(t, 55, got.Scorers[0].Minute)
}

func TestPerformanceRecord_TrainingWithoutMatchFields(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SavePlayer(testPlayer("p1")))
	rec := &club.PerformanceRecord{
		Date:    time.Date(2024, time.October, 3, 0, 0, 0, 0, time.UTC),
		Kind:    club.KindTraining,
		Present: true,
	}
	require.NoError(t, store.AddPerformanceRecord("p1", rec))

	loaded, err := store.GetPlayer("p1")
	require.NoError(t, err)
	require.Len(t, loaded.Records, 1)
	assert.Nil(t, loaded.Records[0].ScoreHome)
	assert.Empty(t, loaded.Records[0].Opponent)
}

func TestDeletePlayer_Cascades(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SavePlayer(testPlayer("p1")))
	require.NoError(t, store.AddPerformanceRecord("p1", &club.PerformanceRecord{
		Date: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), Kind: club.KindTraining, Present: true,
	}))
	require.NoError(t, store.AddUnavailability("p1", &club.Unavailability{
		StartDate: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		Type:      "blessure",
	}))

	require.NoError(t, store.DeletePlayer("p1"))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM performance_records").Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM unavailabilities").Scan(&count))
	assert.Zero(t, count)
}

func TestUnavailabilityRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SavePlayer(testPlayer("p1")))
	u := &club.Unavailability{
		StartDate: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		Type:      "blessure",
		Reason:    "entorse cheville",
	}
	require.NoError(t, store.AddUnavailability("p1", u))

	loaded, err := store.GetPlayer("p1")
	require.NoError(t, err)
	require.Len(t, loaded.Unavailabilities, 1)
	assert.Equal(t, "entorse cheville", loaded.Unavailabilities[0].Reason)

	require.NoError(t, store.DeleteUnavailability("p1", u.ID))
	loaded, err = store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Unavailabilities)
}

func TestRecordProcessingLifecycle(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SavePlayer(testPlayer("p1")))
	rec := &club.PerformanceRecord{
		Date: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), Kind: club.KindMatch, Present: true,
	}
	require.NoError(t, store.AddPerformanceRecord("p1", rec))

	pending, err := store.GetRecordsForProcessing()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "p1", pending[0].PlayerID)
	assert.Equal(t, "Jean Dupont", pending[0].PlayerName)
	assert.Equal(t, club.StatusNew, pending[0].Record.ProcessingStatus)

	require.NoError(t, store.UpdateRecordProcessingStatus(rec.ID, club.StatusCompleted))
	pending, err = store.GetRecordsForProcessing()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUpdateAttendanceCache(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SavePlayer(testPlayer("p1")))
	require.NoError(t, store.UpdateAttendanceCache("p1", 82.5, 64.0))

	loaded, err := store.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, 82.5, loaded.MatchAttendanceRate)
	assert.Equal(t, 64.0, loaded.TrainingAttendanceRate)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.SavePlayer(testPlayer("p1")))
	store.Clear()

	players, err := store.ListPlayers()
	require.NoError(t, err)
	assert.Empty(t, players)
}
