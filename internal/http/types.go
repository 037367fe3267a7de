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

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
