package todo

import (
	"regexp"
	"strings"
)

// The line grammar is consumed left to right in a fixed order: completion
// marker, priority, up to two dates, then the description. Each step tries
// to consume a prefix of what remains and leaves the text untouched when it
// does not match.
var (
	priorityRe = regexp.MustCompile(`^\(([A-Z])\)\s`)
	lineDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s`)
)

// ParseLine parses a single todo.txt line into a Task.
//
// Only the exact prefix "x " marks completion. A priority is a single
// uppercase letter in parentheses followed by whitespace at the start of the
// remaining text; anything else stays in the description. Dates are matched
// lexically as YYYY-MM-DD, up to twice: one date is the creation date for an
// incomplete task and the completion date for a completed one, two dates are
// completion then creation regardless of the completion flag. Calendar
// validity is not checked here.
func ParseLine(line string) Task {
	rest := line

	completed := false
	if strings.HasPrefix(rest, "x ") {
		completed = true
		rest = rest[2:]
	}

	priority := ""
	if m := priorityRe.FindStringSubmatch(rest); m != nil {
		priority = m[1]
		rest = rest[len(m[0]):]
	}

	var dates []string
	for len(dates) < 2 {
		m := lineDateRe.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		dates = append(dates, m[1])
		rest = rest[len(m[0]):]
	}

	completionDate, creationDate := "", ""
	switch len(dates) {
	case 1:
		if completed {
			completionDate = dates[0]
		} else {
			creationDate = dates[0]
		}
	case 2:
		completionDate = dates[0]
		creationDate = dates[1]
	}

	return Task{
		Completed:      completed,
		Priority:       priority,
		CompletionDate: completionDate,
		CreationDate:   creationDate,
		Description:    rest,
		Projects:       extractProjects(line),
		Contexts:       extractContexts(line),
		Tags:           extractTags(line),
		Raw:            line,
	}
}

// Serialize renders a Task back to a todo.txt line. The description already
// contains project, context and tag tokens as literal text, so no structured
// field is re-emitted from the maps.
//
// This is not a byte round trip of Raw. Tasks built by the mutation
// operations serialize through here; Raw only matters for displaying a line
// the user has not edited yet.
func Serialize(t Task) string {
	var b strings.Builder
	if t.Completed {
		b.WriteString("x ")
	}
	if t.Priority != "" {
		b.WriteString("(")
		b.WriteString(t.Priority)
		b.WriteString(") ")
	}
	if t.Completed && t.CompletionDate != "" {
		b.WriteString(t.CompletionDate)
		b.WriteString(" ")
	}
	if t.CreationDate != "" {
		b.WriteString(t.CreationDate)
		b.WriteString(" ")
	}
	b.WriteString(t.Description)
	return b.String()
}

// Line returns the display text for a task: the original raw line when one
// exists, the canonical serialization otherwise.
func Line(t Task) string {
	if t.Raw != "" {
		return t.Raw
	}
	return Serialize(t)
}
