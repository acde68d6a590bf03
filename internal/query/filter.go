// Package query implements the search, filter, grouping and sorting engine
// over parsed tasks, plus the filter-state and preset records the engine
// consumes.
package query

import (
	"regexp"
	"strings"

	"github.com/a-marczewski/todotxt/internal/todo"
)

// PriorityNone selects tasks without a priority in the priority filter and
// in priority: query terms.
const PriorityNone = "none"

// FilterByPriority keeps tasks whose priority matches exactly. The special
// value "none" matches tasks with no priority; an empty selector matches
// everything.
func FilterByPriority(tasks []todo.Task, priority string) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		switch priority {
		case "":
			out = append(out, t)
		case PriorityNone:
			if t.Priority == "" {
				out = append(out, t)
			}
		default:
			if t.Priority == priority {
				out = append(out, t)
			}
		}
	}
	return out
}

// FilterBySearch keeps tasks whose description, projects or contexts contain
// the query, case-insensitively. An empty query matches everything; the
// result is always a fresh slice, never the input.
func FilterBySearch(tasks []todo.Task, query string) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	query = strings.ToLower(strings.TrimSpace(query))
	for _, t := range tasks {
		if query == "" || containsFold(t, query) {
			out = append(out, t)
		}
	}
	return out
}

func containsFold(t todo.Task, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(t.Description), loweredQuery) {
		return true
	}
	for _, p := range t.Projects {
		if strings.Contains(strings.ToLower(p), loweredQuery) {
			return true
		}
	}
	for _, c := range t.Contexts {
		if strings.Contains(strings.ToLower(c), loweredQuery) {
			return true
		}
	}
	return false
}

// FilterByAdvancedSearch evaluates a small query language over
// whitespace-separated terms:
//
//   - terms combine with logical AND
//   - a term containing an unescaped "|" is a group of OR alternatives
//   - a "-" prefix negates the term
//   - "/.../" is a case-insensitive regular expression; a source that does
//     not compile degrades to literal substring matching of the slashed text
//   - "project:", "context:", "priority:" and "due:" restrict a term to the
//     corresponding structured field, with "priority:none" matching tasks
//     that have no priority
//
// A whitespace-only query matches everything.
func FilterByAdvancedSearch(tasks []todo.Task, query string) []todo.Task {
	terms := strings.Fields(query)
	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesAllTerms(t, terms) {
			out = append(out, t)
		}
	}
	return out
}

func matchesAllTerms(t todo.Task, terms []string) bool {
	for _, term := range terms {
		negated := false
		if strings.HasPrefix(term, "-") && len(term) > 1 {
			negated = true
			term = term[1:]
		}
		matched := false
		if isRegexTerm(term) {
			// A slash-wrapped term is one regex; a "|" inside it belongs to
			// the regex, not to the OR syntax.
			matched = matchesTerm(t, term)
		} else {
			for _, alt := range splitAlternatives(term) {
				if matchesTerm(t, alt) {
					matched = true
					break
				}
			}
		}
		if matched == negated {
			return false
		}
	}
	return true
}

// splitAlternatives splits a term on unescaped "|" and unescapes the
// remaining "\|" sequences in each alternative.
func splitAlternatives(term string) []string {
	var alts []string
	var cur strings.Builder
	escaped := false
	for _, r := range term {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			alts = append(alts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	alts = append(alts, cur.String())
	return alts
}

func isRegexTerm(term string) bool {
	return len(term) > 2 && strings.HasPrefix(term, "/") && strings.HasSuffix(term, "/")
}

func matchesTerm(t todo.Task, term string) bool {
	if isRegexTerm(term) {
		return matchesRegex(t, term)
	}
	if field, value, ok := strings.Cut(term, ":"); ok {
		switch field {
		case "project":
			return matchesAny(t.Projects, value)
		case "context":
			return matchesAny(t.Contexts, value)
		case "priority":
			if value == PriorityNone {
				return t.Priority == ""
			}
			return t.Priority == value
		case "due":
			return t.Tags[todo.TagDue] == value
		}
	}
	return containsFold(t, strings.ToLower(term))
}

func matchesRegex(t todo.Task, term string) bool {
	source := term[1 : len(term)-1]
	re, err := regexp.Compile("(?i)" + source)
	if err != nil {
		// Degrade to literal matching of the slashed text rather than
		// failing the whole query.
		return containsFold(t, strings.ToLower(term))
	}
	return re.MatchString(t.Description)
}

func matchesAny(values []string, query string) bool {
	query = strings.ToLower(query)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}
