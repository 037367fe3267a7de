package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/config"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/metrics"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/notifier"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/processor"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/pubsub"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(store *club.MockStore) (*Server, *notifier.Mock, *pubsub.MockPubSubClient) {
	n := notifier.NewMock()
	m := metrics.NewMock()
	ps := pubsub.NewMock("test-project")
	cfg := config.Config{ClubName: "US Aignan", Port: "8080"}
	proc := processor.New(store, n, m, ps, cfg.ClubName)
	return NewServer(store, m, http.NotFoundHandler(), cfg, n, proc, ps), n, ps
}

func testRoster() []club.Player {
	date1, _ := time.Parse("2006-01-02", "2024-09-01")
	date2, _ := time.Parse("2006-01-02", "2024-09-08")
	score2, score1 := 2, 1
	return []club.Player{
		{
			ID:        "p1",
			FirstName: "Jean",
			LastName:  "Martin",
			BirthDate: time.Date(2000, time.May, 12, 0, 0, 0, 0, time.UTC),
			Position:  club.PositionForward,
			Teams:     []string{"Senior 1"},
			Records: []club.PerformanceRecord{
				{
					ID: "r1", Date: date1, Kind: club.KindMatch, Present: true,
					Season: "2024-2025", Opponent: "FC Test", Location: club.LocationHome,
					ScoreHome: &score2, ScoreAway: &score1,
					MatchType: club.MatchTypeChampionship, Goals: 1,
				},
				{
					ID: "r2", Date: date2, Kind: club.KindMatch, Present: true,
					Season: "2024-2025", Opponent: "AS Nogaro", Location: club.LocationAway,
					MatchType: club.MatchTypeChampionship,
				},
			},
		},
		{
			ID:        "p2",
			FirstName: "Paul",
			LastName:  "Durand",
			BirthDate: time.Date(1998, time.January, 20, 0, 0, 0, 0, time.UTC),
			Position:  club.PositionGoalkeeper,
			Teams:     []string{"Senior 1"},
			Records: []club.PerformanceRecord{
				{
					ID: "r3", Date: date1, Kind: club.KindMatch, Present: true,
					Season: "2024-2025", Opponent: "FC Test", Location: club.LocationHome,
					ScoreHome: &score2, ScoreAway: &score1,
					MatchType: club.MatchTypeChampionship, CleanSheet: true,
				},
			},
		},
	}
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _ := newTestServer(club.NewMock())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestListPlayersHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, _, _ := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var players []club.Player
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&players))
	require.Len(t, players, 2)
	assert.Equal(t, "Jean Martin", players[0].FullName())
}

func TestSavePlayerHandler(t *testing.T) {
	store := club.NewMock()
	server, _, _ := newTestServer(store)

	body, _ := json.Marshal(club.Player{FirstName: "Luc", LastName: "Bernard", Position: club.PositionMidfielder})
	req := httptest.NewRequest(http.MethodPost, "/players/save", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, store.SavePlayerCalls, 1)
	assert.Equal(t, "Luc", store.SavePlayerCalls[0].FirstName)
}

func TestSavePlayerHandler_RejectsGet(t *testing.T) {
	server, _, _ := newTestServer(club.NewMock())

	req := httptest.NewRequest(http.MethodGet, "/players/save", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestAddPerformanceHandler(t *testing.T) {
	store := club.NewMock()
	server, _, _ := newTestServer(store)

	payload := map[string]any{
		"player_id": "p1",
		"record": map[string]any{
			"date":     "2024-09-01T00:00:00Z",
			"kind":     "match",
			"present":  true,
			"opponent": "FC Test",
			"location": "home",
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/performance", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, store.AddPerformanceRecordCalls, 1)
	call := store.AddPerformanceRecordCalls[0]
	assert.Equal(t, "p1", call.PlayerID)
	// The season is derived from the event date when absent from the payload.
	assert.Equal(t, "2024-2025", call.Record.Season)
}

func TestAddPerformanceHandler_RequiresPlayerID(t *testing.T) {
	server, _, _ := newTestServer(club.NewMock())

	body := []byte(`{"record":{"kind":"training"}}`)
	req := httptest.NewRequest(http.MethodPost, "/performance", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlayerStatsHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, _, _ := newTestServer(store)

	t.Run("resolves player by name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats/player?player=Jean+Martin&season=2024-2025", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var playerStats stats.PlayerSeasonStats
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&playerStats))
		assert.Equal(t, "p1", playerStats.PlayerID)
		assert.Equal(t, 2, playerStats.PresentMatches)
		assert.Equal(t, 1, playerStats.Goals)
		assert.InDelta(t, 100.0, playerStats.MatchAttendanceRateSeason, 0.001)
	})

	t.Run("resolves player by ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats/player?player=p2&season=2024-2025", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var playerStats stats.PlayerSeasonStats
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&playerStats))
		assert.Equal(t, 1, playerStats.CleanSheets)
	})

	t.Run("unknown player yields 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats/player?player=ghost&season=2024-2025", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTeamStatsHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, _, _ := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/stats/team?team=Senior+1&season=2024-2025", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var summary stats.TeamSummary
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&summary))
	assert.Equal(t, 2, summary.TotalPlayers)
	// Two distinct matches exist even though p1 and p2 share one of them.
	assert.Equal(t, 2, summary.TotalMatches)
	assert.Equal(t, 1, summary.TotalGoals)
}

func TestListEventsHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, _, _ := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/events?kind=match&season=2024-2025", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var events []stats.TeamEvent
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&events))
	// The shared 2024-09-01 match is deduplicated.
	assert.Len(t, events, 2)
}

func TestTeamDistributionHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, _, _ := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/stats/distribution", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var dist map[string]int
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dist))
	assert.Equal(t, 2, dist["Senior 1"])
}

func TestProcessRecordsHandler(t *testing.T) {
	store := club.NewMock()
	date, _ := time.Parse("2006-01-02", "2024-09-01")
	store.GetRecordsForProcessingFunc = func() ([]club.PendingRecord, error) {
		return []club.PendingRecord{{
			PlayerID:   "p1",
			PlayerName: "Jean Martin",
			Record: club.PerformanceRecord{
				ID: "r1", Date: date, Kind: club.KindMatch, Present: true,
				Season: "2024-2025", Opponent: "FC Test",
				ProcessingStatus: club.StatusNew,
			},
		}}, nil
	}
	server, n, _ := newTestServer(store)

	req := httptest.NewRequest(http.MethodPost, "/process", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, n.SendResultNotificationCalls, 1)
	assert.Len(t, store.UpdateRecordProcessingStatusCalls, 3)
}

// pubsubPushBody builds the push envelope the pubsub subscription delivers:
// outer JSON, base64 data, MessagePack payload.
func pubsubPushBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	raw, err := msgpack.Marshal(payload)
	require.NoError(t, err)
	envelope := map[string]any{
		"subscription": "test-sub",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(raw),
		},
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestNotifyResultHandler(t *testing.T) {
	store := club.NewMock()
	server, n, _ := newTestServer(store)

	date, _ := time.Parse("2006-01-02", "2024-09-01")
	record := club.PerformanceRecord{
		ID: "r1", Date: date, Kind: club.KindMatch, Present: true,
		Season: "2024-2025", Opponent: "FC Test",
	}

	req := httptest.NewRequest(http.MethodPost, "/pubsub/notify-result", pubsubPushBody(t, &record))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, n.SendResultNotificationCalls, 1)
	assert.Equal(t, "FC Test", n.SendResultNotificationCalls[0].Record.Opponent)
	assert.Equal(t, "US Aignan", n.SendResultNotificationCalls[0].ClubName)
}

func TestNotifyResultHandler_InvalidJSON(t *testing.T) {
	server, _, _ := newTestServer(club.NewMock())

	req := httptest.NewRequest(http.MethodPost, "/pubsub/notify-result", strings.NewReader("not-json"))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRefreshRatesHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, _, _ := newTestServer(store)

	event := processor.RefreshRatesEvent{PlayerID: "p1"}
	req := httptest.NewRequest(http.MethodPost, "/pubsub/refresh-rates", pubsubPushBody(t, &event))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, store.UpdateAttendanceCacheCalls, 1)
	call := store.UpdateAttendanceCacheCalls[0]
	assert.Equal(t, "p1", call.PlayerID)
	assert.InDelta(t, 100.0, call.MatchRate, 0.001)
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	store := club.NewMock()
	store.ListPlayersFunc = func() ([]club.Player, error) { return testRoster(), nil }
	server, n, _ := newTestServer(store)

	t.Run("known player formats stats", func(t *testing.T) {
		var formattedFor string
		n.FormatPlayerStatsResponseFunc = func(playerStats *stats.PlayerSeasonStats, query string) (any, error) {
			formattedFor = playerStats.PlayerID
			return slackapi.NewBlockMessage(), nil
		}

		form := url.Values{"text": {"Jean Martin"}}
		req := httptest.NewRequest(http.MethodPost, "/slack/command/player-stats", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "p1", formattedFor)
	})

	t.Run("missing text is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/slack/command/player-stats", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestClearStoreHandler(t *testing.T) {
	store := club.NewMock()
	server, _, _ := newTestServer(store)

	t.Run("clears everything without playerID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/clear", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Store cleared!", rr.Body.String())
	})

	t.Run("removes a single player with playerID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/clear?playerID=p1", nil)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, fmt.Sprintf("Removed player %s from store!", "p1"), rr.Body.String())
		require.Len(t, store.DeletePlayerCalls, 1)
		assert.Equal(t, "p1", store.DeletePlayerCalls[0])
	})
}
