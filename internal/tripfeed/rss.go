package tripfeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSSource reads an RSS/Atom bridge of the itinerary: one item per upcoming
// trip, with the destination in the item title and the start date in the
// published timestamp. Useful when the calendar feed is proxied through a
// feed aggregator.
type RSSSource struct {
	Client        *http.Client
	URL           string
	UserAgent     string
	LookaheadDays int
	Location      *time.Location
	Now           func() time.Time
}

func NewRSSSource(url, userAgent string, lookaheadDays int, loc *time.Location) *RSSSource {
	return &RSSSource{
		Client:        &http.Client{Timeout: 15 * time.Second},
		URL:           url,
		UserAgent:     userAgent,
		LookaheadDays: lookaheadDays,
		Location:      loc,
		Now:           time.Now,
	}
}

func (s *RSSSource) FetchTrips(ctx context.Context) ([]Trip, error) {
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

	parser := gofeed.NewParser()
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trip feed: %w", err)
	}

	w := newWindow(s.Now(), s.LookaheadDays, s.Location)

	var events []event
	for _, it := range feed.Items {
		dest := strings.TrimSpace(it.Title)
		if dest == "" {
			continue
		}

		var start time.Time
		if it.PublishedParsed != nil {
			start = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			start = *it.UpdatedParsed
		} else {
			continue
		}
		if !w.contains(start, start) {
			continue
		}

		events = append(events, event{destination: dest, start: start})
	}

	return groupTrips(events, s.Location), nil
}
