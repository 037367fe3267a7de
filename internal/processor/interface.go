package processor

import (
	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/notifier"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetRecordsForProcessing() ([]club.PendingRecord, error)
	UpdateRecordProcessingStatus(recordID string, status club.ProcessingStatus) error
	ListPlayers() ([]club.Player, error)
	UpdateAttendanceCache(playerID string, matchRate, trainingRate float64) error
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
