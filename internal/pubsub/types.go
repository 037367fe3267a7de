package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventNotifyResult asks the push consumer to announce a newly entered
	// match result.
	EventNotifyResult EventType = "notify-result"
	// EventRefreshRates asks the push consumer to recompute a player's
	// cached all-time attendance rates.
	EventRefreshRates EventType = "refresh-rates"
)
