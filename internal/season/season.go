// Package season derives and validates the club's season labels. A season
// runs July through June and is labeled "<startYear>-<startYear+1>", e.g.
// "2024-2025". Labels are used as equality keys throughout the stats engine,
// so the derivation here is the single source of truth.
package season

import (
	"fmt"
	"time"
)

// FromDate returns the season label the given date falls into. Dates from
// July onward belong to the season starting that year; January through June
// belong to the season started the previous year.
func FromDate(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.July {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// Current returns the season label for the current date.
func Current() string {
	return FromDate(time.Now())
}

// Valid reports whether label is a well-formed season label with consecutive
// years.
func Valid(label string) bool {
	var start, end int
	if _, err := fmt.Sscanf(label, "%d-%d", &start, &end); err != nil {
		return false
	}
	return len(label) == 9 && end == start+1
}

// Labels lists season labels from the season containing `from` back through
// `count` seasons, newest first. Used to populate season selectors.
func Labels(from time.Time, count int) []string {
	labels := make([]string, 0, count)
	t := from
	for i := 0; i < count; i++ {
		labels = append(labels, FromDate(t))
		t = t.AddDate(-1, 0, 0)
	}
	return labels
}
