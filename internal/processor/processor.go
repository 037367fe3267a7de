package processor

import (
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/club"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/metrics"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/pubsub"
	"github.com/MrVince17/footmanager-aignan-sub000/internal/stats"
	"github.com/charmbracelet/log"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, clubName string) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		clubName: clubName,
	}
}

// ProcessRecords fetches performance records that need processing and
// advances them through the state machine. Several players usually carry a
// record for the same real match, so result notifications are deduplicated
// per event within a batch.
func (p *Processor) ProcessRecords(dryRun bool) {
	log.Info("Starting record processing...")
	pending, err := p.store.GetRecordsForProcessing()
	if err != nil {
		log.Error("Failed to get records for processing", "error", err)
		return
	}

	if len(pending) == 0 {
		log.Info("No records to process.")
		return
	}

	log.Info("Found records to process", "count", len(pending))
	notified := make(map[string]bool)
	for i := range pending {
		startTime := time.Now()
		p.processRecord(&pending[i], notified, dryRun)
		duration := time.Since(startTime).Seconds()
		p.metrics.ObserveComputeDuration(duration)
		p.metrics.IncRecordsProcessed()
	}
	log.Info("Record processing finished.")
}

func (p *Processor) processRecord(pr *club.PendingRecord, notified map[string]bool, dryRun bool) {
	record := &pr.Record
	log.Info("Processing record", "recordID", record.ID, "player", pr.PlayerName, "initial_status", record.ProcessingStatus)
	for {
		currentState := record.ProcessingStatus
		log.Debug("Evaluating record state", "recordID", record.ID, "status", currentState)

		switch currentState {
		case club.StatusNew:
			if record.Kind == club.KindMatch && record.Present {
				eventKey := record.Date.Format("2006-01-02") + "|" + record.Opponent
				if notified[eventKey] {
					log.Debug("Result already announced for this event in batch", "recordID", record.ID, "event", eventKey)
				} else {
					log.Info("Record is new. Sending result notification.", "recordID", record.ID)
					if !dryRun {
						p.pubsub.SendMessage(pubsub.EventNotifyResult, record)
					}
					p.notifier.SendResultNotification(record, p.clubName, dryRun)
					notified[eventKey] = true
				}
			} else {
				// Trainings and absences never announce anything.
				log.Debug("Record needs no result notification.", "recordID", record.ID, "kind", record.Kind, "present", record.Present)
			}
			p.updateStatus(record, club.StatusResultNotified, dryRun)

		case club.StatusResultNotified:
			log.Info("Record result has been notified. Refreshing attendance cache.", "recordID", record.ID, "playerID", pr.PlayerID)
			if !dryRun {
				p.pubsub.SendMessage(pubsub.EventRefreshRates, &RefreshRatesEvent{PlayerID: pr.PlayerID})
			}
			p.updateStatus(record, club.StatusRatesRefreshed, dryRun)

		case club.StatusRatesRefreshed:
			log.Info("Attendance cache refreshed. Marking record as complete.", "recordID", record.ID)
			p.updateStatus(record, club.StatusCompleted, dryRun)

		case club.StatusCompleted:
			log.Debug("Record is complete. No further processing needed.", "recordID", record.ID)
			return // End of the line for this record

		default:
			log.Warn("Unknown processing status", "status", currentState, "recordID", record.ID)
			return // Exit if status is unknown
		}

		// If the status hasn't changed, we're done with this record for now.
		if record.ProcessingStatus == currentState {
			log.Debug("Record state did not change. Finished processing for now.", "recordID", record.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing record", "recordID", record.ID, "final_status", record.ProcessingStatus)
}

// RefreshAttendanceCache recomputes a player's all-time attendance rates and
// persists them. The cached values back the zero-denominator fallback of the
// season rate computation.
func (p *Processor) RefreshAttendanceCache(playerID string, dryRun bool) {
	log.Debug("Refreshing attendance cache", "playerID", playerID)
	players, err := p.store.ListPlayers()
	if err != nil {
		log.Error("Failed to list players for attendance refresh", "error", err, "playerID", playerID)
		return
	}

	var player *club.Player
	for i := range players {
		if players[i].ID == playerID {
			player = &players[i]
			break
		}
	}
	if player == nil {
		log.Warn("Player not found for attendance refresh", "playerID", playerID)
		return
	}

	p.metrics.IncStatComputations()
	rates := stats.AllTimeRates(*player, players)
	matchRate := rates.MatchAttendanceRateSeason
	trainingRate := rates.TrainingAttendanceRateSeason

	if dryRun {
		log.Info("[Dry Run] Would update attendance cache", "playerID", playerID, "matchRate", matchRate, "trainingRate", trainingRate)
		return
	}

	if err := p.store.UpdateAttendanceCache(playerID, matchRate, trainingRate); err != nil {
		log.Error("Failed to update attendance cache", "error", err, "playerID", playerID)
		return
	}
	log.Info("Updated attendance cache", "playerID", playerID, "matchRate", matchRate, "trainingRate", trainingRate)
}

func (p *Processor) updateStatus(record *club.PerformanceRecord, newStatus club.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update record status", "recordID", record.ID, "from", record.ProcessingStatus, "to", newStatus)
		record.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateRecordProcessingStatus(record.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "recordID", record.ID)
	} else {
		log.Debug("Successfully updated status", "recordID", record.ID, "from", record.ProcessingStatus, "to", newStatus)
		record.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
