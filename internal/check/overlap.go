package check

import (
	"fmt"
	"sort"
	"time"

	"github.com/hzerrad/reminderd/internal/crontab"
	"github.com/hzerrad/reminderd/internal/cronx"
)

// Overlap represents multiple jobs running at the same time
type Overlap struct {
	Time   time.Time
	Count  int
	JobIDs []string
}

// OverlapStats contains statistics about job overlaps
type OverlapStats struct {
	TotalWindows    int
	MaxConcurrent   int
	MostProblematic []Overlap // Top N overlaps sorted by count
}

// ScheduleRef names a schedule alongside the identifier overlaps should be
// reported under — a crontab line number, or a reminder's name.
type ScheduleRef struct {
	ID       string
	Schedule *cronx.Schedule
}

// AnalyzeOverlaps analyzes job overlaps within a time window
func AnalyzeOverlaps(jobs []*crontab.Job, timeWindow time.Duration, parser cronx.Parser) ([]Overlap, OverlapStats, error) {
	refs := make([]ScheduleRef, 0, len(jobs))
	for _, job := range jobs {
		if !job.Valid {
			continue
		}
		schedule, err := parser.Parse(job.Expression)
		if err != nil {
			continue
		}
		jobID := fmt.Sprintf("line-%d", job.LineNumber)
		if job.LineNumber == 0 {
			jobID = job.Expression
		}
		refs = append(refs, ScheduleRef{ID: jobID, Schedule: schedule})
	}
	return AnalyzeScheduleOverlaps(refs, timeWindow)
}

// AnalyzeScheduleOverlaps analyzes overlaps among any set of named schedules
// — crontab jobs and reminder catalogue entries alike — within a time window
// starting now.
func AnalyzeScheduleOverlaps(refs []ScheduleRef, timeWindow time.Duration) ([]Overlap, OverlapStats, error) {
	if len(refs) == 0 {
		return []Overlap{}, OverlapStats{}, nil
	}

	// Start from current time
	startTime := time.Now().Truncate(time.Minute)
	endTime := startTime.Add(timeWindow)

	// Collect all run times for all schedules
	type scheduleRun struct {
		time time.Time
		id   string
	}
	var allRuns []scheduleRun

	for _, ref := range refs {
		times, err := cronx.NextN(ref.Schedule, startTime, 10000) // Large limit to get all runs
		if err != nil && len(times) == 0 {
			continue // Skip schedules that can't be computed within the horizon
		}

		for _, t := range times {
			if t.After(endTime) || t.Equal(endTime) {
				break
			}
			if !t.Before(startTime) {
				allRuns = append(allRuns, scheduleRun{
					time: t.Truncate(time.Minute), // Round to minute for overlap detection
					id:   ref.ID,
				})
			}
		}
	}

	// Group runs by time (minute precision)
	overlapMap := make(map[time.Time][]string)
	for _, run := range allRuns {
		overlapMap[run.time] = append(overlapMap[run.time], run.id)
	}

	// Convert to Overlap structs
	var overlaps []Overlap
	for t, jobIDs := range overlapMap {
		// Remove duplicates
		uniqueJobs := uniqueStrings(jobIDs)
		if len(uniqueJobs) > 1 {
			overlaps = append(overlaps, Overlap{
				Time:   t,
				Count:  len(uniqueJobs),
				JobIDs: uniqueJobs,
			})
		}
	}

	// Sort by count (descending) then by time
	sort.Slice(overlaps, func(i, j int) bool {
		if overlaps[i].Count != overlaps[j].Count {
			return overlaps[i].Count > overlaps[j].Count
		}
		return overlaps[i].Time.Before(overlaps[j].Time)
	})

	// Calculate statistics
	stats := OverlapStats{
		TotalWindows:  len(overlaps),
		MaxConcurrent: 0,
	}

	if len(overlaps) > 0 {
		stats.MaxConcurrent = overlaps[0].Count
		// Get top 10 most problematic overlaps
		topN := 10
		if len(overlaps) < topN {
			topN = len(overlaps)
		}
		stats.MostProblematic = overlaps[:topN]
	}

	return overlaps, stats, nil
}

// uniqueStrings removes duplicates from a string slice
func uniqueStrings(strs []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, s := range strs {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}
