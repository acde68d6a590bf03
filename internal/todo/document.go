package todo

import "strings"

// ParseAll splits a whole document on newlines, skips blank and
// whitespace-only lines, and parses the rest in order.
func ParseAll(text string) []Task {
	var tasks []Task
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tasks = append(tasks, ParseLine(line))
	}
	return tasks
}

// UpdateAtIndex replaces the task at the given index with the serialized
// form of t and re-joins the document. An out-of-range index returns the
// input unchanged; callers validate indices themselves when they need
// different behavior.
func UpdateAtIndex(text string, index int, t Task) string {
	tasks := ParseAll(text)
	if index < 0 || index >= len(tasks) {
		return text
	}
	lines := taskLines(tasks)
	lines[index] = Serialize(t)
	return strings.Join(lines, "\n")
}

// AppendTask adds the serialized task as the last line of the document. No
// trailing newline is added.
func AppendTask(text string, t Task) string {
	lines := taskLines(ParseAll(text))
	lines = append(lines, Serialize(t))
	return strings.Join(lines, "\n")
}

// DeleteAtIndex removes the task at the given index. An out-of-range index
// is a no-op.
func DeleteAtIndex(text string, index int) string {
	tasks := ParseAll(text)
	if index < 0 || index >= len(tasks) {
		return text
	}
	lines := taskLines(tasks)
	lines = append(lines[:index], lines[index+1:]...)
	return strings.Join(lines, "\n")
}

// taskLines returns the display line for each task, preserving raw text for
// lines the caller is not touching.
func taskLines(tasks []Task) []string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = Line(t)
	}
	return lines
}
