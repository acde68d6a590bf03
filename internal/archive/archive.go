// Package archive moves completed tasks out of a todo document into its
// companion done file.
package archive

import (
	"path/filepath"
	"strings"

	"github.com/a-marczewski/todotxt/internal/todo"
)

// DoneFileName is the conventional name of the companion archive file.
const DoneFileName = "done.txt"

// Result is the outcome of splitting a document: the completed tasks that
// should move to the archive and the text that stays behind.
type Result struct {
	CompletedTasks   []todo.Task
	RemainingContent string
}

// SplitCompleted partitions a document by completion flag. RemainingContent
// is the empty string, not a lone newline, when every task was completed.
func SplitCompleted(text string) Result {
	var completed []todo.Task
	var remaining []string
	for _, t := range todo.ParseAll(text) {
		if t.Completed {
			completed = append(completed, t)
		} else {
			remaining = append(remaining, todo.Line(t))
		}
	}
	return Result{
		CompletedTasks:   completed,
		RemainingContent: strings.Join(remaining, "\n"),
	}
}

// AppendToFile appends completed tasks to an existing archive body. The
// existing text is normalized to end with exactly one newline first, so the
// appended block never starts with a blank line; the returned text always
// ends with a newline.
func AppendToFile(existing string, completed []todo.Task) string {
	if len(completed) == 0 {
		return existing
	}
	lines := make([]string, len(completed))
	for i, t := range completed {
		lines[i] = todo.Line(t)
	}
	block := strings.Join(lines, "\n") + "\n"
	if existing == "" {
		return block
	}
	return strings.TrimRight(existing, "\n") + "\n" + block
}

// CompanionPath resolves the done-file path for a todo file: the trailing
// filename component (todo.txt or any *.todotxt file) is replaced with
// done.txt, keeping the directory prefix.
func CompanionPath(todoPath string) string {
	return filepath.Join(filepath.Dir(todoPath), DoneFileName)
}
