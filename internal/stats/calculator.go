// Package stats reports recurrence frequency and collision statistics for
// a reminder catalogue, built on top of the same schedule-analysis
// primitives internal/check uses to flag overlapping reminders.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/hzerrad/reminderd/internal/check"
	"github.com/hzerrad/reminderd/internal/cronx"
	"github.com/hzerrad/reminderd/internal/reminder"
)

// Calculator computes catalogue-wide frequency and collision metrics.
type Calculator struct{}

// NewCalculator creates a new statistics calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// CalculateMetrics calculates comprehensive metrics for a catalogue's
// reminders over the given collision window.
func (c *Calculator) CalculateMetrics(reminders []reminder.Definition, window time.Duration) (*Metrics, error) {
	metrics := &Metrics{
		Frequencies:   []ReminderFrequency{},
		HourHistogram: make([]int, HoursInDay),
	}

	refs := make([]check.ScheduleRef, 0, len(reminders))

	for _, def := range reminders {
		if def.Schedule == nil {
			continue
		}

		runsPerDay, runsPerHour, err := check.EstimateRunFrequency(def.Schedule)
		if err != nil {
			continue
		}

		metrics.Frequencies = append(metrics.Frequencies, ReminderFrequency{
			Name:        def.Name,
			Expression:  def.Schedule.Original,
			RunsPerDay:  runsPerDay,
			RunsPerHour: runsPerHour,
		})
		metrics.TotalRunsPerDay += runsPerDay
		metrics.TotalRunsPerHour += runsPerHour

		c.accumulateHourHistogram(def.Schedule, metrics.HourHistogram)

		refs = append(refs, check.ScheduleRef{ID: def.Name, Schedule: def.Schedule})
	}

	collisions, err := c.calculateCollisions(refs, window)
	if err != nil {
		return nil, fmt.Errorf("stats: failed to analyze collisions: %w", err)
	}
	metrics.Collisions = collisions

	return metrics, nil
}

// accumulateHourHistogram adds one reminder's fires over the reference day
// into the running per-hour histogram.
func (c *Calculator) accumulateHourHistogram(schedule *cronx.Schedule, histogram []int) {
	startTime := check.ReferenceDate
	endTime := startTime.Add(check.DefaultOverlapWindow)

	times, err := cronx.NextN(schedule, startTime.Add(-time.Second), check.MaxRunsForDailyCalculation)
	if err != nil && len(times) == 0 {
		return
	}

	for _, t := range times {
		if !t.Before(endTime) {
			break
		}
		if !t.Before(startTime) {
			histogram[t.Hour()]++
		}
	}
}

// IdentifyMostFrequent returns the top N most frequent reminders.
func (c *Calculator) IdentifyMostFrequent(frequencies []ReminderFrequency, topN int) []ReminderFrequency {
	sorted := make([]ReminderFrequency, len(frequencies))
	copy(sorted, frequencies)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RunsPerDay > sorted[j].RunsPerDay
	})

	if topN > 0 && topN < len(sorted) {
		return sorted[:topN]
	}
	return sorted
}

// IdentifyLeastFrequent returns the top N least frequent reminders.
func (c *Calculator) IdentifyLeastFrequent(frequencies []ReminderFrequency, topN int) []ReminderFrequency {
	sorted := make([]ReminderFrequency, len(frequencies))
	copy(sorted, frequencies)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RunsPerDay < sorted[j].RunsPerDay
	})

	if topN > 0 && topN < len(sorted) {
		return sorted[:topN]
	}
	return sorted
}

// calculateCollisions analyzes how often reminders in refs fire together
// within window, reusing check.AnalyzeScheduleOverlaps rather than
// re-deriving a second concurrency scan over the same schedules.
func (c *Calculator) calculateCollisions(refs []check.ScheduleRef, window time.Duration) (CollisionStats, error) {
	_, overlapStats, err := check.AnalyzeScheduleOverlaps(refs, window)
	if err != nil {
		return CollisionStats{}, err
	}

	hourCounts := make(map[int]int)
	for _, overlap := range overlapStats.MostProblematic {
		hourCounts[overlap.Time.Hour()] += overlap.Count
	}

	busiest := make([]HourStats, 0, len(hourCounts))
	for hour, count := range hourCounts {
		busiest = append(busiest, HourStats{Hour: hour, RunCount: count})
	}
	sort.Slice(busiest, func(i, j int) bool {
		if busiest[i].RunCount != busiest[j].RunCount {
			return busiest[i].RunCount > busiest[j].RunCount
		}
		return busiest[i].Hour < busiest[j].Hour
	})

	frequency := 0.0
	if totalMinutes := window.Minutes(); totalMinutes > 0 {
		frequency = float64(overlapStats.TotalWindows) / totalMinutes * 100.0
	}

	return CollisionStats{
		BusiestHours:       busiest,
		CollisionFrequency: frequency,
		MaxConcurrent:      overlapStats.MaxConcurrent,
	}, nil
}
