// Package engine runs one reconciliation pass: match each upcoming trip
// against the contact directory, filter out pairs already notified, and
// create reminders for the rest.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tripcheck/internal/contacts"
	"tripcheck/internal/match"
	"tripcheck/internal/state"
	"tripcheck/internal/tripfeed"
)

// TaskCreator is the external reminder sink.
type TaskCreator interface {
	CreateTask(ctx context.Context, title, description string) error
}

// Reminder is one (trip, city) pair the engine emitted this pass.
type Reminder struct {
	Trip       tripfeed.Trip
	CityKey    string
	Display    string
	Kind       match.Kind
	DistanceKM float64
	Tasks      int // contact tasks created (or would be, in dry-run)
}

// Failure records a trip whose task creation failed. The pair stays
// unmarked and will be retried on the next run.
type Failure struct {
	TripID  string
	CityKey string
	Err     error
}

// Summary is what one pass did.
type Summary struct {
	Trips     int
	Unmatched int
	Skipped   int // already notified
	Reminders []Reminder
	Failures  []Failure
}

type Options struct {
	DryRun        bool
	TimezoneLabel string // shown next to trip dates in task descriptions
}

type Engine struct {
	matcher *match.Matcher
	store   *state.Store
	tasks   TaskCreator
	log     *slog.Logger
	opts    Options
}

func New(matcher *match.Matcher, store *state.Store, tasks TaskCreator, log *slog.Logger, opts Options) *Engine {
	return &Engine{matcher: matcher, store: store, tasks: tasks, log: log, opts: opts}
}

// Reconcile walks the trips in feed order. A pair is marked notified only
// after every one of its tasks was created, so an interrupted run re-issues
// a reminder rather than silently dropping it. Per-trip failures never stop
// the pass; store persistence failures do.
func (e *Engine) Reconcile(ctx context.Context, trips []tripfeed.Trip, dir *contacts.Directory) (Summary, error) {
	keys := dir.Keys()
	sum := Summary{Trips: len(trips)}

	for _, trip := range trips {
		res, ok, err := e.matcher.Match(ctx, trip.Destination, keys)
		if err != nil {
			return sum, err
		}
		if !ok {
			sum.Unmatched++
			e.log.Debug("no contact city for trip", "trip", trip.ID)
			continue
		}
		if e.store.IsNotified(trip.ID, res.CityKey) {
			sum.Skipped++
			e.log.Debug("already notified", "trip", trip.ID, "city", res.CityKey)
			continue
		}

		city, _ := dir.Get(res.CityKey)
		rem := Reminder{
			Trip:       trip,
			CityKey:    res.CityKey,
			Display:    city.Display,
			Kind:       res.Kind,
			DistanceKM: res.DistanceKM,
		}

		if e.opts.DryRun {
			rem.Tasks = len(city.Contacts)
			sum.Reminders = append(sum.Reminders, rem)
			e.log.Info("would create reminder", "trip", trip.ID, "city", res.CityKey, "kind", res.Kind)
			continue
		}

		created, err := e.createTasks(ctx, trip, city, res)
		rem.Tasks = created
		if err != nil {
			sum.Failures = append(sum.Failures, Failure{TripID: trip.ID, CityKey: res.CityKey, Err: err})
			e.log.Warn("task creation failed, pair left unmarked",
				"trip", trip.ID, "city", res.CityKey, "created", created, "error", err)
			continue
		}

		if err := e.store.MarkNotified(trip.ID, res.CityKey); err != nil {
			return sum, fmt.Errorf("persist notified pair: %w", err)
		}
		sum.Reminders = append(sum.Reminders, rem)
		e.log.Info("reminder created", "trip", trip.ID, "city", res.CityKey, "kind", res.Kind, "tasks", created)
	}

	return sum, nil
}

func (e *Engine) createTasks(ctx context.Context, trip tripfeed.Trip, city contacts.City, res match.Result) (int, error) {
	created := 0
	for _, c := range city.Contacts {
		if c.Name == "" {
			continue
		}
		title := fmt.Sprintf("Reach out to %s re: %s trip", c.Name, trip.Destination)
		if err := e.tasks.CreateTask(ctx, title, e.buildDescription(trip, c, res)); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (e *Engine) buildDescription(trip tripfeed.Trip, c contacts.Contact, res match.Result) string {
	parts := []string{fmt.Sprintf("Trip to %s", trip.Destination)}
	if trip.StartDate != "" || trip.EndDate != "" {
		label := "Dates"
		if e.opts.TimezoneLabel != "" {
			label = fmt.Sprintf("Dates (%s)", e.opts.TimezoneLabel)
		}
		parts = append(parts, fmt.Sprintf("%s: %s → %s", label, orUnknown(trip.StartDate), orUnknown(trip.EndDate)))
	}
	switch res.Kind {
	case match.KindExact:
		parts = append(parts, "Match: exact city name")
	case match.KindRadius:
		parts = append(parts, fmt.Sprintf("Match: within %.1f km", res.DistanceKM))
	}
	if c.Note != "" {
		parts = append(parts, "Notes: "+c.Note)
	}
	return strings.Join(parts, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
