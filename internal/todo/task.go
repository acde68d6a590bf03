/*
Package todo implements the todo.txt line format: parsing one line into a
structured Task, serializing a Task back to a line, and the pure document
operations built on top of both.

The format follows these principles:
 1. The text file is the sole source of truth for task state.
 2. A malformed fragment is never an error; it stays in the description as
    literal text and the structured field is simply absent.
 3. Every operation returns a new value. No Task is mutated in place.
*/
package todo

import (
	"regexp"
	"strings"
)

// Task represents one parsed todo.txt line.
//
// Projects, contexts and tags are lifted out of the line for convenience but
// remain embedded in Description as literal substrings. Raw holds the
// original unmodified line and may be empty for synthesized tasks.
type Task struct {
	Completed      bool              `json:"completed"`
	Priority       string            `json:"priority,omitempty"` // single uppercase letter, "" when unset
	CompletionDate string            `json:"completion_date,omitempty"`
	CreationDate   string            `json:"creation_date,omitempty"`
	Description    string            `json:"description"`
	Projects       []string          `json:"projects,omitempty"`
	Contexts       []string          `json:"contexts,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
	Raw            string            `json:"raw,omitempty"`
}

// Well-known tag keys.
const (
	TagDue       = "due"
	TagThreshold = "t"
	TagPriority  = "pri"
	TagRecur     = "rec"
)

var (
	projectRe = regexp.MustCompile(`(?:^|\s)\+(\S+)`)
	contextRe = regexp.MustCompile(`(?:^|\s)@(\S+)`)
	// Key is the shortest non-whitespace run before the first colon, so a
	// value may itself contain colons ("key:a:b" splits at the first one).
	tagRe = regexp.MustCompile(`(?:^|\s)([^\s:]+):(\S+)`)
)

// Clone returns a deep copy of the task. Slices and the tag map are copied
// so the result can be modified without touching the receiver.
func (t Task) Clone() Task {
	out := t
	if t.Projects != nil {
		out.Projects = append([]string(nil), t.Projects...)
	}
	if t.Contexts != nil {
		out.Contexts = append([]string(nil), t.Contexts...)
	}
	if t.Tags != nil {
		out.Tags = make(map[string]string, len(t.Tags))
		for k, v := range t.Tags {
			out.Tags[k] = v
		}
	}
	return out
}

// Tag returns the value of the named tag and whether it is present.
func (t Task) Tag(key string) (string, bool) {
	v, ok := t.Tags[key]
	return v, ok
}

// HasProject reports whether the task carries the given project,
// case-insensitively.
func (t Task) HasProject(name string) bool {
	for _, p := range t.Projects {
		if strings.EqualFold(p, name) {
			return true
		}
	}
	return false
}

// HasContext reports whether the task carries the given context,
// case-insensitively.
func (t Task) HasContext(name string) bool {
	for _, c := range t.Contexts {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// extractProjects scans a full line for "+name" tokens at the start of the
// line or after whitespace. Order is preserved and duplicates are kept.
func extractProjects(line string) []string {
	var out []string
	for _, m := range projectRe.FindAllStringSubmatch(line, -1) {
		out = append(out, m[1])
	}
	return out
}

// extractContexts is the same scan for "@name" tokens.
func extractContexts(line string) []string {
	var out []string
	for _, m := range contextRe.FindAllStringSubmatch(line, -1) {
		out = append(out, m[1])
	}
	return out
}

// extractTags scans a full line for key:value pairs. A token starting with
// "+" or "@" is a project or context, never a tag. Later duplicate keys win.
func extractTags(line string) map[string]string {
	matches := tagRe.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make(map[string]string, len(matches))
	for _, m := range matches {
		key, value := m[1], m[2]
		if strings.HasPrefix(key, "+") || strings.HasPrefix(key, "@") {
			continue
		}
		tags[key] = value
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// SetTag returns a copy of the task with the tag rewritten in both the tag
// map and the description text. Any previous "key:..." token is removed from
// the description first; the new token is appended at the end. An empty
// value removes the tag entirely.
func SetTag(t Task, key, value string) Task {
	out := t.Clone()
	desc := removeTagToken(out.Description, key)
	if value != "" {
		if desc == "" {
			desc = key + ":" + value
		} else {
			desc = desc + " " + key + ":" + value
		}
	}
	return WithDescription(out, desc)
}

// RemoveTag returns a copy of the task with the tag deleted from the tag map
// and its token stripped from the description.
func RemoveTag(t Task, key string) Task {
	return SetTag(t, key, "")
}

// removeTagToken strips every "key:value" token (with its leading
// whitespace) from a description string.
func removeTagToken(desc, key string) string {
	re := regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(key) + `:\S+`)
	return strings.TrimSpace(re.ReplaceAllString(desc, ""))
}

// WithDescription replaces the description and re-derives projects, contexts
// and tags from it. Completion state, priority and dates pass through.
func WithDescription(t Task, desc string) Task {
	out := t
	out.Description = desc
	out.Projects = extractProjects(desc)
	out.Contexts = extractContexts(desc)
	out.Tags = extractTags(desc)
	return out
}
