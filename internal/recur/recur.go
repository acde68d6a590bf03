// Package recur implements the rec: tag: pattern parsing, next-occurrence
// arithmetic, and synthesis of the follow-up task when a recurring task is
// completed.
package recur

import (
	"regexp"
	"strconv"
	"time"

	"github.com/a-marczewski/todotxt/internal/todo"
)

// Pattern is a parsed rec: value. Strict patterns (leading "+") advance from
// the task's due date; non-strict patterns advance from the completion date.
type Pattern struct {
	Value  int
	Unit   Unit
	Strict bool
}

// Unit is the calendar unit of a recurrence interval.
type Unit string

const (
	UnitDay   Unit = "d"
	UnitWeek  Unit = "w"
	UnitMonth Unit = "m"
	UnitYear  Unit = "y"
)

var patternRe = regexp.MustCompile(`^(\+?)(\d+)([dwmy])$`)

// Parse reads a rec: tag value. Invalid syntax is not an error; recurrence
// is simply absent and the second return is false.
func Parse(value string) (Pattern, bool) {
	m := patternRe.FindStringSubmatch(value)
	if m == nil {
		return Pattern{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return Pattern{}, false
	}
	return Pattern{Value: n, Unit: Unit(m[3]), Strict: m[1] == "+"}, true
}

// Next computes the occurrence after base for the pattern. Month and year
// additions that overflow the target month (Jan 31 + 1m, Feb 29 + 1y) clamp
// to the last day of the target month instead of rolling forward.
func Next(p Pattern, base time.Time) time.Time {
	y, mo, d := base.Date()
	switch p.Unit {
	case UnitDay:
		return base.AddDate(0, 0, p.Value)
	case UnitWeek:
		return base.AddDate(0, 0, p.Value*7)
	case UnitMonth:
		next := time.Date(y, mo+time.Month(p.Value), d, 0, 0, 0, 0, time.UTC)
		if next.Day() != d {
			next = lastOfMonth(y, mo+time.Month(p.Value))
		}
		return next
	case UnitYear:
		next := time.Date(y+p.Value, mo, d, 0, 0, 0, 0, time.UTC)
		if next.Day() != d {
			next = lastOfMonth(y+p.Value, mo)
		}
		return next
	}
	return base
}

// lastOfMonth relies on day-zero normalization: day 0 of month+1 is the
// final day of month.
func lastOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// NextDueDate resolves the base date for a pattern and returns the next due
// date as a YYYY-MM-DD string. Strict patterns use the task's current due
// date when it parses; everything else falls back to the completion date.
func NextDueDate(p Pattern, t todo.Task, completionDate string) (string, bool) {
	base, ok := baseDate(p, t, completionDate)
	if !ok {
		return "", false
	}
	return Next(p, base).Format(todo.DateLayout), true
}

func baseDate(p Pattern, t todo.Task, completionDate string) (time.Time, bool) {
	if p.Strict {
		if due, ok := todo.DueDate(t); ok {
			return due, true
		}
	}
	return todo.ParseDate(completionDate)
}

// NextTask synthesizes the follow-up occurrence for a completed recurring
// task. It returns false when the task has no parseable rec: tag or the base
// date cannot be resolved.
//
// The new task is not completed, its creation date is the completion date of
// the finished occurrence, its due tag is the computed next date, and the
// threshold tag keeps the lead time of the finished occurrence: the old
// due-minus-threshold interval is re-applied to the new due date. Priority
// and the pri: archive tag are cleared; every occurrence starts
// priority-fresh.
func NextTask(t todo.Task, completionDate string) (todo.Task, bool) {
	recValue, ok := t.Tag(todo.TagRecur)
	if !ok {
		return todo.Task{}, false
	}
	pattern, ok := Parse(recValue)
	if !ok {
		return todo.Task{}, false
	}
	nextDue, ok := NextDueDate(pattern, t, completionDate)
	if !ok {
		return todo.Task{}, false
	}

	next := t.Clone()
	next.Completed = false
	next.CompletionDate = ""
	next.CreationDate = completionDate
	next.Priority = ""
	next.Raw = ""
	next = todo.RemoveTag(next, todo.TagPriority)
	next = todo.SetTag(next, todo.TagDue, nextDue)

	if oldThreshold, ok := todo.ThresholdDate(t); ok {
		reference, refOK := todo.DueDate(t)
		if !refOK {
			// No valid old due date to measure lead time against; keep the
			// threshold aligned with the recurrence base instead.
			reference, refOK = baseDate(pattern, t, completionDate)
		}
		if refOK {
			lead := reference.Sub(oldThreshold)
			nextDueDay, _ := todo.ParseDate(nextDue)
			newThreshold := nextDueDay.Add(-lead).Format(todo.DateLayout)
			next = todo.SetTag(next, todo.TagThreshold, newThreshold)
		}
	}

	return next, true
}
