package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/metrics"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/notifier"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendResultNotification(record *club.PerformanceRecord, clubName string, dryRun bool) error {
	msg := s.formatResultNotification(record, clubName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendTeamSummary(summary *stats.TeamSummary, dryRun bool) error {
	msg := s.formatTeamSummary(summary)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerStats(playerStats *stats.PlayerSeasonStats, query string, dryRun bool) error {
	msg := s.formatPlayerStats(playerStats, query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerNotFound(query string, dryRun bool) error {
	msg := s.formatPlayerNotFound(query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatTeamSummaryResponse formats a team summary message for a slash command response.
func (s *Notifier) FormatTeamSummaryResponse(summary *stats.TeamSummary) (any, error) {
	return s.formatTeamSummary(summary), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(playerStats *stats.PlayerSeasonStats, query string) (any, error) {
	return s.formatPlayerStats(playerStats, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
// The score line is oriented from the club's perspective: home fixtures read
// "<club> X - Y <opponent>", away fixtures the other way around.
func (s *Notifier) formatResultNotification(record *club.PerformanceRecord, clubName string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "⚽ Match terminé ! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Score line
	opponent := record.Opponent
	if opponent == "" {
		opponent = stats.UnknownOpponent
	}
	var scoreText string
	if record.ScoreHome != nil && record.ScoreAway != nil {
		if record.Location == club.LocationAway {
			scoreText = fmt.Sprintf("%s %d - %d %s", opponent, *record.ScoreHome, *record.ScoreAway, clubName)
		} else {
			scoreText = fmt.Sprintf("%s %d - %d %s", clubName, *record.ScoreHome, *record.ScoreAway, opponent)
		}
	} else {
		scoreText = fmt.Sprintf("%s - %s (score non communiqué)", clubName, opponent)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	// Details
	detailsText := fmt.Sprintf("Date: %s\nCompétition: %s", record.Date.Format("Monday 02 Jan"), record.MatchType)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Scorers
	if len(record.Scorers) > 0 {
		var scorerLines []string
		for _, g := range record.Scorers {
			scorerLines = append(scorerLines, fmt.Sprintf("• %s (%d')", g.PlayerID, g.Minute))
		}
		scorersText := "Buteurs:\n" + strings.Join(scorerLines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scorersText, true, false), nil, nil))
	}

	// Context (clean sheet)
	if record.CleanSheet {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "🧤 Clean sheet !", true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTeamSummary creates a Slack message to display a team's season summary.
func (s *Notifier) formatTeamSummary(summary *stats.TeamSummary) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📊 %s — saison %s 📊", summary.Team, summary.Season), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if summary.TotalPlayers == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Aucun joueur dans cette équipe.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	summaryText := fmt.Sprintf("Effectif: %d joueurs (âge moyen %.1f)\nMatchs: %d | Entraînements: %d | Buts: %d",
		summary.TotalPlayers,
		summary.AverageAge,
		summary.TotalMatches,
		summary.TotalTrainings,
		summary.TotalGoals,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", summaryText, true, false), nil, nil))

	attendanceText := fmt.Sprintf("> *Présence matchs*: %.2f%%\n> *Présence entraînements*: %.2f%%",
		summary.AverageMatchAttendance,
		summary.AverageTrainingAttendance,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", attendanceText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's season stats.
func (s *Notifier) formatPlayerStats(stat *stats.PlayerSeasonStats, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := fmt.Sprintf("⚽ Stats de %s (%s) ⚽", stat.PlayerName, stat.Season)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Matchs joués*: %d\n> *Buts*: %d | *Passes décisives*: %d\n> *Cartons*: %d 🟨 / %d 🟥\n> *Présence matchs*: %.2f%% | *Présence entraînements*: %.2f%%",
		stat.PresentMatches,
		stat.Goals,
		stat.Assists,
		stat.YellowCards,
		stat.RedCards,
		stat.MatchAttendanceRateSeason,
		stat.TrainingAttendanceRateSeason,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	if stat.CleanSheets > 0 {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("🧤 %d clean sheets", stat.CleanSheets), true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
