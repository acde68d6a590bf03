package todo

import (
	"regexp"
	"time"
)

// DueStatus classifies a due date against a reference day.
type DueStatus string

const (
	DueOverdue DueStatus = "overdue"
	DueToday   DueStatus = "today"
	DueFuture  DueStatus = "future"
)

// ThresholdStatus classifies a threshold (defer/start) date.
type ThresholdStatus string

const (
	ThresholdReady    ThresholdStatus = "ready"
	ThresholdNotReady ThresholdStatus = "not_ready"
)

// DateLayout is the only recognized date form in the format.
const DateLayout = "2006-01-02"

var strictDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate validates a tag date value: it must match YYYY-MM-DD lexically
// and denote a real calendar day. The line parser accepts any lexically
// valid date; this stricter check is applied only by the due and threshold
// utilities, which treat a calendar-invalid date as absent.
func ParseDate(s string) (time.Time, bool) {
	if !strictDateRe.MatchString(s) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// truncateDay strips the time of day, keeping year, month and day only.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDueDateStatus compares a due date with today at day granularity.
func GetDueDateStatus(due, today time.Time) DueStatus {
	d, n := truncateDay(due), truncateDay(today)
	switch {
	case d.Before(n):
		return DueOverdue
	case d.Equal(n):
		return DueToday
	default:
		return DueFuture
	}
}

// GetThresholdStatus reports whether a deferred task has become actionable.
// A threshold on or before today is ready.
func GetThresholdStatus(threshold, today time.Time) ThresholdStatus {
	if truncateDay(threshold).After(truncateDay(today)) {
		return ThresholdNotReady
	}
	return ThresholdReady
}

// DueDate returns the task's validated due date, if any.
func DueDate(t Task) (time.Time, bool) {
	v, ok := t.Tags[TagDue]
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(v)
}

// ThresholdDate returns the task's validated threshold date, if any.
func ThresholdDate(t Task) (time.Time, bool) {
	v, ok := t.Tags[TagThreshold]
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(v)
}
