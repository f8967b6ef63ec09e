// Package doc generates reference documentation for a reminder catalogue,
// reusing the same humanizer and schedule-analysis primitives the CLI
// commands use for --verbose output.
package doc

import (
	"time"

	"github.com/hzerrad/reminderd/internal/check"
	"github.com/hzerrad/reminderd/internal/cronx"
	"github.com/hzerrad/reminderd/internal/human"
	"github.com/hzerrad/reminderd/internal/reminder"
)

// Generator builds a Document describing a reminder catalogue.
type Generator struct {
	humanizer human.Humanizer
}

// NewGenerator creates a new documentation generator.
func NewGenerator() *Generator {
	return &Generator{humanizer: human.NewHumanizer()}
}

// Document represents a complete reference document for a catalogue.
type Document struct {
	Title       string
	GeneratedAt time.Time
	Source      string
	Reminders   []ReminderDocument
	Metadata    Metadata
}

// ReminderDocument documents a single reminder.
type ReminderDocument struct {
	Name        string
	Expression  string
	Description string
	Icon        string
	NextRuns    []time.Time
	Stats       *ReminderStats
}

// ReminderStats contains frequency statistics for a reminder.
type ReminderStats struct {
	RunsPerDay  int
	RunsPerHour int
}

// Metadata contains catalogue-level document metadata.
type Metadata struct {
	TotalReminders int
}

// GenerateOptions controls what GenerateDocument includes per reminder.
type GenerateOptions struct {
	IncludeNext  int // Number of next runs to include (0 = disabled)
	IncludeStats bool
}

// GenerateDocument builds a Document from the catalogue's reminders.
func (g *Generator) GenerateDocument(reminders []reminder.Definition, source string, options GenerateOptions) (*Document, error) {
	document := &Document{
		Title:       "Reminder Catalogue Reference",
		GeneratedAt: time.Now(),
		Source:      source,
		Reminders:   []ReminderDocument{},
	}

	for _, def := range reminders {
		document.Metadata.TotalReminders++

		rd := ReminderDocument{
			Name: def.Name,
			Icon: def.Icon,
		}

		if def.Schedule != nil {
			rd.Expression = def.Schedule.Original
			rd.Description = g.humanizer.Humanize(def.Schedule)

			if options.IncludeNext > 0 {
				times, err := cronx.NextN(def.Schedule, time.Now(), options.IncludeNext)
				if err == nil {
					rd.NextRuns = times
				}
			}

			if options.IncludeStats {
				runsPerDay, runsPerHour, err := check.EstimateRunFrequency(def.Schedule)
				if err == nil {
					rd.Stats = &ReminderStats{RunsPerDay: runsPerDay, RunsPerHour: runsPerHour}
				}
			}
		}

		document.Reminders = append(document.Reminders, rd)
	}

	return document, nil
}
