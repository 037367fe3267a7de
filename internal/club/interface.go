package club

// ClubStore defines the interface for interacting with the club's roster data.
type ClubStore interface {
	ListPlayers() ([]Player, error)
	GetPlayer(playerID string) (*Player, error)
	SavePlayer(p *Player) error
	DeletePlayer(playerID string) error

	AddPerformanceRecord(playerID string, rec *PerformanceRecord) error
	UpdatePerformanceRecord(playerID string, rec *PerformanceRecord) error
	DeletePerformanceRecord(playerID, recordID string) error

	AddUnavailability(playerID string, u *Unavailability) error
	DeleteUnavailability(playerID, unavailabilityID string) error

	UpdateAttendanceCache(playerID string, matchRate, trainingRate float64) error
	GetRecordsForProcessing() ([]PendingRecord, error)
	UpdateRecordProcessingStatus(recordID string, status ProcessingStatus) error

	Clear()
}
