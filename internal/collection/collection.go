package collection

import (
	"context"
	"slices"
	"time"
)

// Collection is a single bin collection on a given day.
type Collection struct {
	// Date is always at midnight, the time of day carries no meaning.
	Date time.Time `json:"date"`
	// Type is the bin category exactly as the council labels it (ex. "Grey").
	Type string `json:"type"`
	// Icon is a symbolic icon identifier, empty if the category has no icon.
	Icon string `json:"icon,omitempty"`
}

// Day truncates a time to midnight, keeping the calendar date it was
// written in.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Info describes where a list of collections came from.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Url         string `json:"url"`
}

// Source is anything that can produce the collection schedule of a single
// property.
type Source interface {
	Info() Info
	Fetch(ctx context.Context) ([]Collection, error)
}

// Upcoming returns the collections that happen on or after the day of
// `from` in chronological order. Collections on the same day keep their
// relative order.
func Upcoming(events []Collection, from time.Time) []Collection {
	today := Day(from)

	result := []Collection{}
	for _, e := range events {
		if e.Date.Before(today) {
			continue
		}
		result = append(result, e)
	}
	slices.SortStableFunc(result, func(a, b Collection) int {
		return a.Date.Compare(b.Date)
	})
	return result
}

// Next returns the first collection on or after the day of `from`.
func Next(events []Collection, from time.Time) (Collection, bool) {
	upcoming := Upcoming(events, from)
	if len(upcoming) == 0 {
		return Collection{}, false
	}
	return upcoming[0], true
}
