// Package tripfeed turns the traveler's published itinerary feed into trip
// records for one reconciliation pass.
package tripfeed

import (
	"context"
	"time"

	"tripcheck/internal/geo"
)

// Trip is one upcoming itinerary entry, grouped per destination. ID is the
// normalized destination, which stays stable across feed refreshes.
type Trip struct {
	ID          string
	Destination string // raw, as the feed gave it
	StartDate   string // YYYY-MM-DD, may be empty
	EndDate     string
}

// Source produces the upcoming trips within the look-ahead window.
type Source interface {
	FetchTrips(ctx context.Context) ([]Trip, error)
}

// event is one dated feed entry before grouping.
type event struct {
	destination string
	start, end  time.Time
}

type window struct {
	from, to time.Time
	loc      *time.Location
}

func newWindow(now time.Time, lookaheadDays int, loc *time.Location) window {
	return window{
		from: dateOf(now.In(loc)),
		to:   dateOf(now.In(loc).AddDate(0, 0, lookaheadDays)),
		loc:  loc,
	}
}

func (w window) contains(start, end time.Time) bool {
	s := dateOf(start.In(w.loc))
	e := dateOf(end.In(w.loc))
	return !s.After(w.to) && !e.Before(w.from)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// groupTrips folds events into one Trip per normalized destination, keeping
// feed order and widening the date range when a city appears more than once
// (multi-leg trips show up as several calendar events).
func groupTrips(events []event, loc *time.Location) []Trip {
	grouped := map[string]*Trip{}
	var order []string

	for _, ev := range events {
		key := geo.Normalize(ev.destination)
		if key == "" {
			continue
		}
		start := ev.start.In(loc).Format("2006-01-02")
		end := ""
		if !ev.end.IsZero() {
			end = ev.end.In(loc).Format("2006-01-02")
		}

		t, ok := grouped[key]
		if !ok {
			grouped[key] = &Trip{ID: key, Destination: ev.destination, StartDate: start, EndDate: end}
			order = append(order, key)
			continue
		}
		if start < t.StartDate {
			t.StartDate = start
		}
		if end > t.EndDate {
			t.EndDate = end
		}
	}

	out := make([]Trip, 0, len(order))
	for _, k := range order {
		out = append(out, *grouped[k])
	}
	return out
}
