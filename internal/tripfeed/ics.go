package tripfeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ICSSource reads the TripIt iCalendar feed. Each VEVENT's location (or,
// failing that, its summary) is the destination.
type ICSSource struct {
	Client        *http.Client
	URL           string
	UserAgent     string
	LookaheadDays int
	Location      *time.Location
	Now           func() time.Time
}

func NewICSSource(url, userAgent string, lookaheadDays int, loc *time.Location) *ICSSource {
	return &ICSSource{
		Client:        &http.Client{Timeout: 30 * time.Second},
		URL:           url,
		UserAgent:     userAgent,
		LookaheadDays: lookaheadDays,
		Location:      loc,
		Now:           time.Now,
	}
}

func (s *ICSSource) FetchTrips(ctx context.Context) ([]Trip, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("trip feed: status %d", resp.StatusCode)
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trip feed: %w", err)
	}

	w := newWindow(s.Now(), s.LookaheadDays, s.Location)

	var events []event
	for _, ev := range cal.Events() {
		start, end, ok := eventDates(ev)
		if !ok || !w.contains(start, end) {
			continue
		}
		dest := eventDestination(ev)
		if dest == "" {
			continue
		}
		events = append(events, event{destination: dest, start: start, end: end})
	}

	return groupTrips(events, s.Location), nil
}

func eventDestination(ev *ics.VEvent) string {
	if p := ev.GetProperty(ics.ComponentPropertyLocation); p != nil && strings.TrimSpace(p.Value) != "" {
		return strings.TrimSpace(p.Value)
	}
	if p := ev.GetProperty(ics.ComponentPropertySummary); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}

func eventDates(ev *ics.VEvent) (time.Time, time.Time, bool) {
	start, err := ev.GetStartAt()
	if err != nil {
		if start, err = ev.GetAllDayStartAt(); err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	end, err := ev.GetEndAt()
	if err != nil {
		if end, err = ev.GetAllDayEndAt(); err != nil {
			end = start
		}
	}
	return start, end, true
}
