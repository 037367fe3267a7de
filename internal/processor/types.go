package processor

import (
	"github.com/MrVince17/footmanager-aignan-sub000/internal/metrics"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/pubsub"
)

// Processor handles the business logic of advancing performance records
// through their post-entry lifecycle.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	clubName string
}

// RefreshRatesEvent is the pubsub payload asking for a player's cached
// all-time attendance rates to be recomputed.
type RefreshRatesEvent struct {
	PlayerID string `msgpack:"player_id"`
}
