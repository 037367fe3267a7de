package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"io"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/processor"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/season"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID != "" {
			log.Info("Received request to remove a specific player", "playerID", playerID)
			if err := s.Store.DeletePlayer(playerID); err != nil {
				log.Error("Failed to delete player", "error", err, "playerID", playerID)
				http.Error(w, "Failed to delete player", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Removed player %s from store!", playerID)
			log.Info("Successfully removed player from store", "playerID", playerID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// writeJSON is a helper to encode a response body as JSON.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, players)
	}
}

func (s *Server) SavePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var player club.Player
		if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
			log.Error("Failed to decode player payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Store.SavePlayer(&player); err != nil {
			log.Error("Failed to save player", "error", err)
			http.Error(w, "Failed to save player", http.StatusInternalServerError)
			return
		}
		log.Info("Saved player", "playerID", player.ID, "name", player.FullName())
		writeJSON(w, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		if playerID == "" {
			http.Error(w, "playerID is required", http.StatusBadRequest)
			return
		}
		if err := s.Store.DeletePlayer(playerID); err != nil {
			log.Error("Failed to delete player", "error", err, "playerID", playerID)
			http.Error(w, "Failed to delete player", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// performanceRequest is the payload for adding or updating a performance record.
type performanceRequest struct {
	PlayerID string                 `json:"player_id"`
	Record   club.PerformanceRecord `json:"record"`
}

func (s *Server) AddPerformanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req performanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode performance payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "player_id is required", http.StatusBadRequest)
			return
		}

		record := stats.SanitizeRecord(req.Record)
		if err := s.Store.AddPerformanceRecord(req.PlayerID, &record); err != nil {
			log.Error("Failed to add performance record", "error", err, "playerID", req.PlayerID)
			http.Error(w, "Failed to add performance record", http.StatusInternalServerError)
			return
		}
		log.Info("Added performance record", "playerID", req.PlayerID, "recordID", record.ID, "kind", record.Kind)
		writeJSON(w, record)
	}
}

func (s *Server) UpdatePerformanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req performanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode performance payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" || req.Record.ID == "" {
			http.Error(w, "player_id and record.id are required", http.StatusBadRequest)
			return
		}

		record := stats.SanitizeRecord(req.Record)
		if err := s.Store.UpdatePerformanceRecord(req.PlayerID, &record); err != nil {
			log.Error("Failed to update performance record", "error", err, "recordID", record.ID)
			http.Error(w, "Failed to update performance record", http.StatusInternalServerError)
			return
		}
		writeJSON(w, record)
	}
}

func (s *Server) DeletePerformanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		recordID := r.URL.Query().Get("recordID")
		if playerID == "" || recordID == "" {
			http.Error(w, "playerID and recordID are required", http.StatusBadRequest)
			return
		}
		if err := s.Store.DeletePerformanceRecord(playerID, recordID); err != nil {
			log.Error("Failed to delete performance record", "error", err, "recordID", recordID)
			http.Error(w, "Failed to delete performance record", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// unavailabilityRequest is the payload for declaring a player unavailability.
type unavailabilityRequest struct {
	PlayerID       string              `json:"player_id"`
	Unavailability club.Unavailability `json:"unavailability"`
}

func (s *Server) AddUnavailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req unavailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode unavailability payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PlayerID == "" {
			http.Error(w, "player_id is required", http.StatusBadRequest)
			return
		}

		if err := s.Store.AddUnavailability(req.PlayerID, &req.Unavailability); err != nil {
			log.Error("Failed to add unavailability", "error", err, "playerID", req.PlayerID)
			http.Error(w, "Failed to add unavailability", http.StatusInternalServerError)
			return
		}
		writeJSON(w, req.Unavailability)
	}
}

func (s *Server) DeleteUnavailabilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("playerID")
		unavailabilityID := r.URL.Query().Get("unavailabilityID")
		if playerID == "" || unavailabilityID == "" {
			http.Error(w, "playerID and unavailabilityID are required", http.StatusBadRequest)
			return
		}
		if err := s.Store.DeleteUnavailability(playerID, unavailabilityID); err != nil {
			log.Error("Failed to delete unavailability", "error", err, "unavailabilityID", unavailabilityID)
			http.Error(w, "Failed to delete unavailability", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

// seasonOrCurrent resolves the 'season' query parameter, defaulting to the
// season in progress.
func seasonOrCurrent(r *http.Request) string {
	if label := r.URL.Query().Get("season"); label != "" {
		return label
	}
	return season.Current()
}

// findPlayer resolves a query against the roster, matching the player ID
// first and the full name (case-insensitively) second.
func findPlayer(players []club.Player, query string) *club.Player {
	for i := range players {
		if players[i].ID == query {
			return &players[i]
		}
	}
	for i := range players {
		if strings.EqualFold(players[i].FullName(), query) {
			return &players[i]
		}
	}
	for i := range players {
		if strings.Contains(strings.ToLower(players[i].FullName()), strings.ToLower(query)) {
			return &players[i]
		}
	}
	return nil
}

// PlayerStatsHandler serves a single player's season statistics.
func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("player")
		if query == "" {
			http.Error(w, "player is required", http.StatusBadRequest)
			return
		}
		seasonLabel := seasonOrCurrent(r)

		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		player := findPlayer(players, query)
		if player == nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}

		startTime := time.Now()
		playerStats := stats.ComputePlayerSeason(*player, players, seasonLabel)
		s.Metrics.IncStatComputations()
		s.Metrics.ObserveComputeDuration(time.Since(startTime).Seconds())

		writeJSON(w, playerStats)
	}
}

// TeamStatsHandler serves the team rollup for a season.
func (s *Server) TeamStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team := r.URL.Query().Get("team")
		seasonLabel := seasonOrCurrent(r)

		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		startTime := time.Now()
		summary := stats.RollupTeam(players, seasonLabel, team)
		s.Metrics.IncStatComputations()
		s.Metrics.ObserveComputeDuration(time.Since(startTime).Seconds())

		writeJSON(w, summary)
	}
}

// TeamDistributionHandler serves the per-team headcount.
func (s *Server) TeamDistributionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, stats.TeamDistribution(players))
	}
}

// LicenseIssuesHandler serves the players with license or payment problems.
func (s *Server) LicenseIssuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, stats.LicenseIssues(players))
	}
}

// ListEventsHandler serves the reconciled team events for a season.
func (s *Server) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := stats.EventFilter{
			Kind:      club.EventKind(r.URL.Query().Get("kind")),
			Season:    r.URL.Query().Get("season"),
			Team:      r.URL.Query().Get("team"),
			MatchType: club.MatchType(r.URL.Query().Get("match_type")),
		}

		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, stats.ReconcileEvents(players, filter))
	}
}

func (s *Server) ProcessRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting record processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessRecords(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Record processing completed.")
		log.Info("Record processing finished.")
	}
}

// decodePubSubPayload unwraps a pubsub push request: outer JSON envelope,
// base64 message data, MessagePack payload.
func (s *Server) decodePubSubPayload(r *http.Request, v any) error {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received pubsub push message", "body", string(bodyBytes))

	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		return fmt.Errorf("failed to unmarshal wrapper JSON: %w", err)
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		return fmt.Errorf("failed to decode base64 data: %w", err)
	}

	return s.pubsub.ProcessMessage(rawData, v)
}

func (s *Server) NotifyResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := club.PerformanceRecord{}
		if err := s.decodePubSubPayload(r, &record); err != nil {
			log.Error("Failed to decode notify result message", "error", err)
			http.Error(w, "Invalid pubsub payload", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendResultNotification(&record, s.Cfg.ClubName, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) RefreshRatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event := processor.RefreshRatesEvent{}
		if err := s.decodePubSubPayload(r, &event); err != nil {
			log.Error("Failed to decode refresh rates message", "error", err)
			http.Error(w, "Invalid pubsub payload", http.StatusBadRequest)
			return
		}

		isDryRun := isDryRunFromContext(r)
		s.Processor.RefreshAttendanceCache(event.PlayerID, isDryRun)
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := r.FormValue("text")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player stats command", "player", playerName)

		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		var msg any
		player := findPlayer(players, playerName)
		if player == nil {
			log.Warn("Could not find player", "player", playerName)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		} else {
			playerStats := stats.ComputePlayerSeason(*player, players, season.Current())
			s.Metrics.IncStatComputations()
			msg, err = s.Notifier.FormatPlayerStatsResponse(&playerStats, playerName)
		}

		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// TeamSummaryCommandHandler returns a handler for the /team-summary Slack command.
func (s *Server) TeamSummaryCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		team := r.FormValue("text")

		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		summary := stats.RollupTeam(players, season.Current(), team)
		s.Metrics.IncStatComputations()

		msg, err := s.Notifier.FormatTeamSummaryResponse(&summary)
		if err != nil {
			http.Error(w, "Failed to format team summary", http.StatusInternalServerError)
			log.Error("Failed to format team summary", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
