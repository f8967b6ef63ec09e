package cronx

import "fmt"

// ParseError is returned by Parser.Parse when a cron expression is
// ill-formed or a field value falls outside its permitted range. It names
// the offending field and token so callers (config loading, CLI commands)
// can report precisely what was wrong.
type ParseError struct {
	FieldIndex int    // 0-4, or -1 if the error is not field-specific (e.g. wrong field count)
	FieldName  string // "minute", "hour", "day-of-month", "month", "day-of-week", or ""
	Token      string // the offending raw token
	Reason     string
}

func (e *ParseError) Error() string {
	if e.FieldName == "" {
		return fmt.Sprintf("cron: %s: %q", e.Reason, e.Token)
	}
	return fmt.Sprintf("cron: invalid %s field %q: %s", e.FieldName, e.Token, e.Reason)
}

// UnsatisfiableError is returned by NextAfter when no instant within the
// bounded search horizon satisfies the schedule (e.g. "0 0 31 2 *", which
// asks for February 31st).
type UnsatisfiableError struct {
	Expression string
	Horizon    string
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("cron: schedule %q has no occurrence within %s", e.Expression, e.Horizon)
}
