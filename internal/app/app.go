// Package app wires one reconciliation run together.
package app

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tripcheck/internal/config"
	"tripcheck/internal/contacts"
	"tripcheck/internal/engine"
	"tripcheck/internal/geo"
	"tripcheck/internal/match"
	"tripcheck/internal/report"
	"tripcheck/internal/state"
	"tripcheck/internal/todoist"
	"tripcheck/internal/tripfeed"
)

func Run() error {
	ignoreState := flag.Bool("ignore-state", false,
		"treat every matched trip as not yet notified for this run (history is kept intact)")
	dryRun := flag.Bool("dry-run", false,
		"print the reminders that would be created without creating or recording anything")
	writeReport := flag.Bool("report", false, "write a docx summary of the run")
	flag.Parse()

	// .env is for local use; a scheduler environment sets real variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !*dryRun && cfg.TodoistToken == "" {
		return fmt.Errorf("config: TODOIST_API_TOKEN is required")
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using UTC", "timezone", cfg.Timezone)
		loc = time.UTC
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dir, err := contacts.Load(cfg.ContactsDir)
	if err != nil {
		return err
	}
	if dir.Len() == 0 {
		return fmt.Errorf("no contact files in %s", cfg.ContactsDir)
	}

	cache, err := geo.NewCache(cfg.GeoCacheFile, geo.NewNominatimClient(cfg.UserAgent))
	if err != nil {
		return err
	}

	store, err := state.Load(cfg.StateFile)
	if err != nil {
		return err
	}
	if *ignoreState {
		store.IgnoreHistory()
		logger.Info("ignoring notification history for this run")
	}

	var source tripfeed.Source
	switch cfg.FeedFormat {
	case "rss":
		source = tripfeed.NewRSSSource(cfg.FeedURL, cfg.UserAgent, cfg.LookaheadDays, loc)
	default:
		source = tripfeed.NewICSSource(cfg.FeedURL, cfg.UserAgent, cfg.LookaheadDays, loc)
	}

	trips, err := source.FetchTrips(ctx)
	if err != nil {
		return fmt.Errorf("fetch trips: %w", err)
	}
	if len(trips) == 0 {
		fmt.Println("No upcoming trips found.")
		return nil
	}
	logger.Info("trips fetched", "count", len(trips), "contact_cities", dir.Len())

	eng := engine.New(
		match.New(cache, cfg.RadiusKM),
		store,
		todoist.NewClient(cfg.TodoistToken),
		logger,
		engine.Options{DryRun: *dryRun, TimezoneLabel: cfg.Timezone},
	)

	sum, err := eng.Reconcile(ctx, trips, dir)
	if err != nil {
		return err
	}

	printSummary(sum, *dryRun)

	if *writeReport {
		path, err := report.Write("reports", sum)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Println("Report saved to:", path)
	}

	if len(sum.Failures) > 0 {
		return fmt.Errorf("%d trip(s) failed task creation", len(sum.Failures))
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	if level == "debug" {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printSummary(sum engine.Summary, dryRun bool) {
	verb := "Created"
	if dryRun {
		verb = "Would create"
	}

	tasks := 0
	for _, r := range sum.Reminders {
		tasks += r.Tasks
	}
	fmt.Printf("%s %d reminder(s) / %d task(s) for %d trip(s).\n", verb, len(sum.Reminders), tasks, sum.Trips)

	for _, r := range sum.Reminders {
		if r.Kind == match.KindRadius {
			fmt.Printf("  %s -> %s (within %.1f km)\n", r.Trip.Destination, r.Display, r.DistanceKM)
		} else {
			fmt.Printf("  %s -> %s (exact)\n", r.Trip.Destination, r.Display)
		}
	}
	if sum.Skipped > 0 {
		fmt.Printf("Skipped %d already-notified pair(s).\n", sum.Skipped)
	}
	if sum.Unmatched > 0 {
		fmt.Printf("%d trip(s) had no matching contact city.\n", sum.Unmatched)
	}
	for _, f := range sum.Failures {
		fmt.Printf("FAILED %s / %s: %v\n", f.TripID, f.CityKey, f.Err)
	}
}
