package cronx

import "time"

// searchHorizon bounds how far into the future NextAfter will search before
// concluding a schedule is unsatisfiable (e.g. "31 2 *" — February 31st
// never occurs). It doubles as a safety cutoff so an ill-considered
// expression fails fast instead of looping forever.
const searchHorizon = 4 * 365 * 24 * time.Hour

// NextAfter computes the next instant, strictly after from, at which
// schedule fires. The returned instant always has its seconds and
// sub-second components zeroed (fires are minute-aligned).
//
// The search advances in order of descending significance — month, then
// day, then hour, then minute — skipping the earliest field that doesn't
// match forward to its next possible value and resetting every
// lower-order field to its minimum, exactly as a human scanning a
// calendar would. Day-of-month and day-of-week combine disjunctively
// ("OR") when both are restricted; a wildcarded side contributes no
// restriction.
func NextAfter(schedule *Schedule, from time.Time) (time.Time, error) {
	loc := from.Location()
	t := time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), from.Minute(), 0, 0, loc).Add(time.Minute)
	limit := t.Add(searchHorizon)

	for {
		if t.After(limit) {
			return time.Time{}, &UnsatisfiableError{Expression: schedule.Original, Horizon: "4 years"}
		}

		if !schedule.Month.Contains(int(t.Month())) {
			t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)
			continue
		}

		if !dayMatches(schedule, t) {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
			continue
		}

		if !schedule.Hour.Contains(t.Hour()) {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc).Add(time.Hour)
			continue
		}

		if !schedule.Minute.Contains(t.Minute()) {
			t = t.Add(time.Minute)
			continue
		}

		return t, nil
	}
}

// dayMatches implements the day-of-month / day-of-week combination rule:
// if both are restricted (neither is "*"), a day matches if EITHER
// matches (disjunction); if one side is wildcarded, only the other side
// restricts; if both are wildcarded, every day matches.
func dayMatches(schedule *Schedule, t time.Time) bool {
	domWild := schedule.DayOfMonth.IsEvery()
	dowWild := schedule.DayOfWeek.IsEvery()

	switch {
	case domWild && dowWild:
		return true
	case domWild:
		return schedule.DayOfWeek.Contains(int(t.Weekday()))
	case dowWild:
		return schedule.DayOfMonth.Contains(t.Day())
	default:
		return schedule.DayOfMonth.Contains(t.Day()) || schedule.DayOfWeek.Contains(int(t.Weekday()))
	}
}

// NextN returns the next n firing instants of schedule strictly after from,
// in ascending order. It is a thin convenience built on repeated NextAfter
// calls, used by the CLI's "next" and "timeline" commands and by
// check.CalculateRunsPerDay-style frequency analysis.
func NextN(schedule *Schedule, from time.Time, n int) ([]time.Time, error) {
	times := make([]time.Time, 0, n)
	cursor := from
	for i := 0; i < n; i++ {
		next, err := NextAfter(schedule, cursor)
		if err != nil {
			return times, err
		}
		times = append(times, next)
		cursor = next
	}
	return times, nil
}
