package query

import (
	"time"

	"github.com/a-marczewski/todotxt/internal/todo"
)

// FilterFocus keeps the tasks worth acting on today: incomplete tasks that
// are either due (overdue or due today) or past their threshold. A task with
// neither a valid due nor threshold tag is excluded. The result is ordered
// by priority then description.
func FilterFocus(tasks []todo.Task, today time.Time) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if inFocus(t, today) {
			out = append(out, t)
		}
	}
	return sortFocus(out)
}

func inFocus(t todo.Task, today time.Time) bool {
	if due, ok := todo.DueDate(t); ok {
		if s := todo.GetDueDateStatus(due, today); s == todo.DueOverdue || s == todo.DueToday {
			return true
		}
	}
	if threshold, ok := todo.ThresholdDate(t); ok {
		return todo.GetThresholdStatus(threshold, today) == todo.ThresholdReady
	}
	return false
}
