package season_test

import (
	"testing"
	"time"

	"github.com/MrVince17/footmanager-aignan-sub000/internal/season"
	"github.com/stretchr/testify/assert"
)

func TestFromDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"july starts a new season", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"june belongs to previous season", time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), "2023-2024"},
		{"mid season autumn", time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"mid season spring", time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"january flips to previous start year", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"december keeps start year", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "2024-2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, season.FromDate(tt.date))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, season.Valid("2024-2025"))
	assert.False(t, season.Valid("2024-2026"))
	assert.False(t, season.Valid("2024"))
	assert.False(t, season.Valid("saison"))
}

func TestLabels(t *testing.T) {
	from := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	labels := season.Labels(from, 3)
	assert.Equal(t, []string{"2024-2025", "2023-2024", "2022-2023"}, labels)
}
