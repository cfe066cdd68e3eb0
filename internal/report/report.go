// Package report exports a docx summary of one reconciliation pass.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gingfrederik/docx"

	"tripcheck/internal/engine"
	"tripcheck/internal/match"
)

// Write saves the run summary under dir and returns the file path.
func Write(dir string, sum engine.Summary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	f := docx.NewFile()

	titleP := f.AddParagraph()
	titleRun := titleP.AddText("Trip Outreach Report")
	titleRun.Size(20)
	f.AddParagraph() // Spacer

	p := f.AddParagraph()
	p.AddText(fmt.Sprintf("Trips: %d | Reminders: %d | Already notified: %d | Unmatched: %d | Failures: %d",
		sum.Trips, len(sum.Reminders), sum.Skipped, sum.Unmatched, len(sum.Failures)))

	f.AddParagraph() // Spacer
	f.AddParagraph().AddText("--------------------------------------------------")
	f.AddParagraph() // Spacer

	for _, r := range sum.Reminders {
		p = f.AddParagraph()
		run := p.AddText(fmt.Sprintf("%s (contacts: %s)", r.Trip.Destination, r.Display))
		run.Size(16)

		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("%s | %s to %s | %d task(s)",
			matchLabel(r), dateLabel(r.Trip.StartDate), dateLabel(r.Trip.EndDate), r.Tasks))
		run.Size(10)
		run.Color("808080")

		f.AddParagraph() // Spacer
	}

	if len(sum.Failures) > 0 {
		f.AddParagraph().AddText("Failed task creation (will retry next run):")
		for _, fl := range sum.Failures {
			p = f.AddParagraph()
			run := p.AddText(fmt.Sprintf("- %s / %s: %v", fl.TripID, fl.CityKey, fl.Err))
			run.Color("FF0000")
		}
	}

	timestamp := time.Now().Format("2006-01-02_15-04")
	filename := filepath.Join(dir, fmt.Sprintf("outreach_%s.docx", timestamp))
	if err := f.Save(filename); err != nil {
		return "", err
	}
	return filename, nil
}

func matchLabel(r engine.Reminder) string {
	if r.Kind == match.KindRadius {
		return fmt.Sprintf("radius match, %.1f km", r.DistanceKM)
	}
	return "exact match"
}

func dateLabel(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
