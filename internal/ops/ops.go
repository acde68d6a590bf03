// Package ops holds the task mutation operations: toggle, create, edit,
// delete. Every function is pure; date-dependent operations take today as an
// explicit parameter so callers own the clock.
package ops

import (
	"strings"
	"time"

	"github.com/a-marczewski/todotxt/internal/recur"
	"github.com/a-marczewski/todotxt/internal/todo"
)

// ToggleResult is the outcome of toggling completion. Recurring is non-nil
// only when completing a task with a valid rec: tag; the generated follow-up
// is returned alongside the completed original, never merged into it.
type ToggleResult struct {
	Task      todo.Task
	Recurring *todo.Task
}

// ToggleCompletion flips the completion state of a task.
//
// Completing a task stamps the completion date and archives any priority
// into a pri: tag so un-completing can restore it. Un-completing clears the
// completion date and restores the archived priority. The recurring
// follow-up is only ever generated on the incomplete-to-complete direction.
func ToggleCompletion(t todo.Task, today time.Time) ToggleResult {
	if t.Completed {
		out := t.Clone()
		out.Completed = false
		out.CompletionDate = ""
		if pri, ok := out.Tag(todo.TagPriority); ok {
			out.Priority = pri
			out = todo.RemoveTag(out, todo.TagPriority)
		}
		return ToggleResult{Task: out}
	}

	out := t.Clone()
	out.Completed = true
	out.CompletionDate = today.Format(todo.DateLayout)
	if out.Priority != "" {
		out = todo.SetTag(out, todo.TagPriority, out.Priority)
		out.Priority = ""
	}

	result := ToggleResult{Task: out}
	if next, ok := recur.NextTask(out, out.CompletionDate); ok {
		result.Recurring = &next
	}
	return result
}

// CreateTask builds a new task from a description. Projects, contexts and
// tags embedded in the description are extracted by the same rules as
// parsing. A due: tag is appended when a due date is given. A threshold tag
// is always set: to thresholdDate when given, otherwise to today, so a new
// task is immediately actionable unless deferred explicitly.
func CreateTask(description, priority, dueDate, thresholdDate string, today time.Time) todo.Task {
	desc := strings.TrimSpace(description)
	if dueDate != "" {
		desc = appendToken(desc, todo.TagDue+":"+dueDate)
	}
	threshold := thresholdDate
	if threshold == "" {
		threshold = today.Format(todo.DateLayout)
	}
	desc = appendToken(desc, todo.TagThreshold+":"+threshold)

	var b strings.Builder
	if priority != "" {
		b.WriteString("(")
		b.WriteString(priority)
		b.WriteString(") ")
	}
	b.WriteString(today.Format(todo.DateLayout))
	b.WriteString(" ")
	b.WriteString(desc)

	return todo.ParseLine(b.String())
}

func appendToken(desc, token string) string {
	if desc == "" {
		return token
	}
	return desc + " " + token
}

// TaskUpdates is a presence-keyed partial update for EditTask. A nil field
// means "leave unchanged"; a pointer to the empty string means "provided,
// clear it". That distinction is how a priority or a date is removed.
type TaskUpdates struct {
	Description   *string
	Priority      *string
	DueDate       *string
	ThresholdDate *string
}

// EditTask applies the provided updates and returns a new task. A
// description update re-derives projects, contexts and tags. Due and
// threshold updates rewrite the tag both in the tag map and as literal text
// in the description. Completion state and dates always pass through.
func EditTask(t todo.Task, updates TaskUpdates) todo.Task {
	out := t.Clone()

	if updates.Description != nil {
		out = todo.WithDescription(out, *updates.Description)
	}
	if updates.Priority != nil {
		out.Priority = *updates.Priority
	}
	if updates.DueDate != nil {
		out = todo.SetTag(out, todo.TagDue, *updates.DueDate)
	}
	if updates.ThresholdDate != nil {
		out = todo.SetTag(out, todo.TagThreshold, *updates.ThresholdDate)
	}
	out.Raw = ""
	return out
}

// RemoveFromList deletes the task at index, returning a new slice. An
// out-of-range index returns the input unchanged.
func RemoveFromList(tasks []todo.Task, index int) []todo.Task {
	if index < 0 || index >= len(tasks) {
		return tasks
	}
	out := make([]todo.Task, 0, len(tasks)-1)
	out = append(out, tasks[:index]...)
	out = append(out, tasks[index+1:]...)
	return out
}
