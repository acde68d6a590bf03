package query

import "github.com/a-marczewski/todotxt/internal/todo"

// Unclassified is the bucket label for tasks lacking the grouped attribute.
const Unclassified = "(unclassified)"

// Group is one bucket of a grouped task list. Bucket order is the order of
// first occurrence, which is a guarantee rather than an accident, so groups
// are a slice instead of a map.
type Group struct {
	Key   string
	Tasks []todo.Task
}

// GroupByProject buckets tasks by project. A task with several projects
// appears once under each; a task with none lands in the unclassified
// bucket.
func GroupByProject(tasks []todo.Task) []Group {
	return groupBy(tasks, func(t todo.Task) []string { return t.Projects })
}

// GroupByContext buckets tasks by context, with the same multi-membership
// and unclassified rules as GroupByProject.
func GroupByContext(tasks []todo.Task) []Group {
	return groupBy(tasks, func(t todo.Task) []string { return t.Contexts })
}

// GroupByPriority buckets tasks by their priority letter; tasks without one
// go to the unclassified bucket.
func GroupByPriority(tasks []todo.Task) []Group {
	return groupBy(tasks, func(t todo.Task) []string {
		if t.Priority == "" {
			return nil
		}
		return []string{t.Priority}
	})
}

func groupBy(tasks []todo.Task, keys func(todo.Task) []string) []Group {
	var groups []Group
	index := make(map[string]int)

	add := func(key string, t todo.Task) {
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}

	for _, t := range tasks {
		ks := keys(t)
		if len(ks) == 0 {
			add(Unclassified, t)
			continue
		}
		// A task listing the same project or context twice still appears
		// once under that bucket.
		seen := make(map[string]bool, len(ks))
		for _, k := range ks {
			if seen[k] {
				continue
			}
			seen[k] = true
			add(k, t)
		}
	}
	return groups
}
