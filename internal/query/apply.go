package query

import "github.com/a-marczewski/todotxt/internal/todo"

// Apply runs the filtering parts of a FilterState over a task list: status
// first, then priority, then the advanced search. Grouping and sorting are
// separate calls because their output shapes differ.
func Apply(tasks []todo.Task, state FilterState) []todo.Task {
	out := filterByStatus(tasks, state.Status)
	out = FilterByPriority(out, state.Priority)
	return FilterByAdvancedSearch(out, state.Search)
}

func filterByStatus(tasks []todo.Task, status string) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		switch status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
