package http

import (
	"net/http"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/config"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/metrics"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/notifier"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/processor"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/pubsub"
)

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/save", Chain(s.SavePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/delete", Chain(s.DeletePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/performance", Chain(s.AddPerformanceHandler(), paramsMiddleware))
	s.Router.Handle("/performance/update", Chain(s.UpdatePerformanceHandler(), paramsMiddleware))
	s.Router.Handle("/performance/delete", Chain(s.DeletePerformanceHandler(), paramsMiddleware))
	s.Router.Handle("/unavailability", Chain(s.AddUnavailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/unavailability/delete", Chain(s.DeleteUnavailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/stats/player", Chain(s.PlayerStatsHandler(), paramsMiddleware))
	s.Router.Handle("/stats/team", Chain(s.TeamStatsHandler(), paramsMiddleware))
	s.Router.Handle("/stats/distribution", Chain(s.TeamDistributionHandler(), paramsMiddleware))
	s.Router.Handle("/stats/license-issues", Chain(s.LicenseIssuesHandler(), paramsMiddleware))
	s.Router.Handle("/events", Chain(s.ListEventsHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessRecordsHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/refresh-rates", Chain(s.RefreshRatesHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/team-summary", Chain(s.TeamSummaryCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
