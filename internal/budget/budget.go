// Package budget checks whether a reminder catalogue stays within
// concurrency limits, reusing the same overlap-analysis primitives
// internal/check and internal/stats are built on.
package budget

import (
	"fmt"
	"sort"
	"time"

	"github.com/hzerrad/reminderd/internal/check"
	"github.com/hzerrad/reminderd/internal/reminder"
)

// Budget represents a concurrency budget rule.
type Budget struct {
	MaxConcurrent int           // Maximum concurrent reminders allowed
	TimeWindow    time.Duration // Time window for budget (e.g., 1m, 1h, 24h)
	Name          string        // Budget name/identifier (optional)
}

// Violation represents a budget violation at a specific time.
type Violation struct {
	Time      time.Time
	Count     int      // Number of concurrent reminders
	Reminders []string // Reminder names involved
	Budget    Budget   // The budget that was violated
}

// BudgetResult represents the analysis result for a single budget.
type BudgetResult struct {
	Budget     Budget
	MaxFound   int // Maximum concurrent reminders found in the time window
	Passed     bool
	Violations []Violation
}

// BudgetReport represents the complete budget analysis report.
type BudgetReport struct {
	Budgets    []BudgetResult
	Passed     bool // true if all budgets passed
	Violations []Violation
}

// AnalyzeBudget analyzes a reminder catalogue against budget rules.
func AnalyzeBudget(reminders []reminder.Definition, budgets []Budget) (*BudgetReport, error) {
	if len(budgets) == 0 {
		return nil, fmt.Errorf("no budgets specified")
	}

	refs := make([]check.ScheduleRef, 0, len(reminders))
	for _, def := range reminders {
		if def.Schedule == nil {
			continue
		}
		refs = append(refs, check.ScheduleRef{ID: def.Name, Schedule: def.Schedule})
	}

	report := &BudgetReport{
		Budgets:    []BudgetResult{},
		Passed:     true,
		Violations: []Violation{},
	}

	for _, b := range budgets {
		result, err := analyzeSingleBudget(refs, b)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze budget %s: %w", b.Name, err)
		}

		report.Budgets = append(report.Budgets, *result)
		if !result.Passed {
			report.Passed = false
		}
		report.Violations = append(report.Violations, result.Violations...)
	}

	return report, nil
}

// analyzeSingleBudget analyzes the catalogue against a single budget rule,
// delegating the concurrency scan to check.AnalyzeScheduleOverlaps.
func analyzeSingleBudget(refs []check.ScheduleRef, b Budget) (*BudgetResult, error) {
	result := &BudgetResult{
		Budget:     b,
		Passed:     true,
		Violations: []Violation{},
	}

	if len(refs) == 0 {
		return result, nil
	}

	overlaps, overlapStats, err := check.AnalyzeScheduleOverlaps(refs, b.TimeWindow)
	if err != nil {
		return nil, err
	}

	result.MaxFound = overlapStats.MaxConcurrent
	if result.MaxFound == 0 {
		// No two reminders ever coincide within the window, but reminders
		// still fire individually: the real max concurrency is 1, not 0.
		result.MaxFound = 1
	}

	for _, o := range overlaps {
		if o.Count > b.MaxConcurrent {
			result.Violations = append(result.Violations, Violation{
				Time:      o.Time,
				Count:     o.Count,
				Reminders: o.JobIDs,
				Budget:    b,
			})
		}
	}

	if result.MaxFound > b.MaxConcurrent {
		result.Passed = false
	} else {
		result.Violations = []Violation{}
	}

	sort.Slice(result.Violations, func(i, j int) bool {
		return result.Violations[i].Time.Before(result.Violations[j].Time)
	})

	return result, nil
}
