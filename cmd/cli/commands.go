package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	statsPlayer     string
	statsSeason     string
	summaryTeam     string
	summarySeason   string
	eventsKind      string
	eventsSeason    string
	eventsTeam      string
	eventsMatchType string
	processDryRun   bool
)

func init() {
	statsCmd.Flags().StringVar(&statsPlayer, "player", "", "Player ID or full name")
	statsCmd.Flags().StringVar(&statsSeason, "season", "", "Season label, e.g. 2024-2025 (defaults to the current season)")
	statsCmd.MarkFlagRequired("player")

	summaryCmd.Flags().StringVar(&summaryTeam, "team", "", "Team tag, e.g. 'Senior 1' (empty for the whole club)")
	summaryCmd.Flags().StringVar(&summarySeason, "season", "", "Season label (defaults to the current season)")

	eventsCmd.Flags().StringVar(&eventsKind, "kind", "", "Event kind: match or training")
	eventsCmd.Flags().StringVar(&eventsSeason, "season", "", "Season label")
	eventsCmd.Flags().StringVar(&eventsTeam, "team", "", "Team tag")
	eventsCmd.Flags().StringVar(&eventsMatchType, "match-type", "", "Match type, e.g. Championnat")

	processCmd.Flags().BoolVar(&processDryRun, "dry-run", false, "Walk the record lifecycle without persisting or notifying")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(distributionCmd)
	rootCmd.AddCommand(licenseIssuesCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the club store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get a player's season statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"player": {statsPlayer}}
		if statsSeason != "" {
			params.Set("season", statsSeason)
		}
		return performGetRequest("/stats/player", params)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Get a team's season summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if summaryTeam != "" {
			params.Set("team", summaryTeam)
		}
		if summarySeason != "" {
			params.Set("season", summarySeason)
		}
		return performGetRequest("/stats/team", params)
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the reconciled team events",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if eventsKind != "" {
			params.Set("kind", eventsKind)
		}
		if eventsSeason != "" {
			params.Set("season", eventsSeason)
		}
		if eventsTeam != "" {
			params.Set("team", eventsTeam)
		}
		if eventsMatchType != "" {
			params.Set("match_type", eventsMatchType)
		}
		return performGetRequest("/events", params)
	},
}

var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Get the per-team headcount",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats/distribution", nil)
	},
}

var licenseIssuesCmd = &cobra.Command{
	Use:   "license-issues",
	Short: "List players with license or payment problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats/license-issues", nil)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Advance pending performance records through their lifecycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if processDryRun {
			params.Set("dry_run", "true")
		}
		return performGetRequest("/process", params)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func performGetRequest(endpoint string, params url.Values) error {
	requestURL := host + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", requestURL)

	resp, err := http.Get(requestURL)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
