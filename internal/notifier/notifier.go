package notifier

import (
	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For freshly entered match results
	SendResultNotification(record *club.PerformanceRecord, clubName string, dryRun bool) error
	// For slash commands
	SendTeamSummary(summary *stats.TeamSummary, dryRun bool) error
	SendPlayerStats(playerStats *stats.PlayerSeasonStats, query string, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatTeamSummaryResponse(summary *stats.TeamSummary) (any, error)
	FormatPlayerStatsResponse(playerStats *stats.PlayerSeasonStats, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
