package query

import (
	"sort"

	"github.com/a-marczewski/todotxt/internal/todo"
)

// SortTasks orders a copy of the list: every incomplete task before every
// completed one, then within each partition by priority ascending with
// no-priority tasks last, then by description. Description comparison is
// byte-ordinal, not locale-aware, so the order is identical in every
// environment.
func SortTasks(tasks []todo.Task) []todo.Task {
	out := append([]todo.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		return lessByPriority(a, b)
	})
	return out
}

// sortFocus is the same ordering without the completion partition; focus
// tasks are incomplete by construction.
func sortFocus(tasks []todo.Task) []todo.Task {
	out := append([]todo.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return lessByPriority(out[i], out[j])
	})
	return out
}

func lessByPriority(a, b todo.Task) bool {
	switch {
	case a.Priority != "" && b.Priority == "":
		return true
	case a.Priority == "" && b.Priority != "":
		return false
	case a.Priority != b.Priority:
		return a.Priority < b.Priority
	}
	return a.Description < b.Description
}
