package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortTasks(t *testing.T) {
	tasks := parseAll(
		"x (A) done but important",
		"zebra chores",
		"(B) second priority",
		"x plain done",
		"(A) top priority",
		"apple chores",
	)

	got := SortTasks(tasks)
	want := []string{
		"top priority",       // incomplete (A)
		"second priority",    // incomplete (B)
		"apple chores",       // incomplete, no priority, description order
		"zebra chores",
		"done but important", // completed (A)
		"plain done",         // completed, no priority
	}
	assert.Equal(t, want, descriptions(got))

	// Incomplete always precede completed.
	sawCompleted := false
	for _, task := range got {
		if task.Completed {
			sawCompleted = true
		} else {
			require.False(t, sawCompleted, "incomplete task after a completed one")
		}
	}

	// Input order untouched.
	assert.Equal(t, "x (A) done but important", tasks[0].Raw)
}

func TestGroupByProject(t *testing.T) {
	tasks := parseAll(
		"one +Home",
		"two +Work +Home",
		"three",
		"four +Work",
	)

	groups := GroupByProject(tasks)
	require.Len(t, groups, 3)

	// Insertion order of first occurrence.
	assert.Equal(t, "Home", groups[0].Key)
	assert.Equal(t, "Work", groups[1].Key)
	assert.Equal(t, Unclassified, groups[2].Key)

	assert.Len(t, groups[0].Tasks, 2)
	assert.Len(t, groups[1].Tasks, 2)
	assert.Equal(t, []string{"three"}, descriptions(groups[2].Tasks))
}

func TestGroupByContext(t *testing.T) {
	tasks := parseAll("call @phone", "mail @office @phone", "walk")

	groups := GroupByContext(tasks)
	require.Len(t, groups, 3)
	assert.Equal(t, "phone", groups[0].Key)
	assert.Len(t, groups[0].Tasks, 2)
}

func TestGroupByPriority(t *testing.T) {
	tasks := parseAll("(B) b task", "(A) a task", "no priority", "(B) b again")

	groups := GroupByPriority(tasks)
	require.Len(t, groups, 3)
	assert.Equal(t, "B", groups[0].Key)
	assert.Equal(t, "A", groups[1].Key)
	assert.Equal(t, Unclassified, groups[2].Key)
	assert.Len(t, groups[0].Tasks, 2)
}

func TestFilterFocus(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tasks := parseAll(
		"overdue due:2026-01-01",
		"due today due:2026-01-10",
		"future due:2026-02-01",
		"ready t:2026-01-05",
		"deferred t:2026-02-01",
		"x done anyway due:2026-01-01",
		"no dates at all",
		"(A) overdue priority due:2026-01-09",
	)

	got := FilterFocus(tasks, today)
	want := []string{
		"overdue priority due:2026-01-09", // priority first
		"due today due:2026-01-10",
		"overdue due:2026-01-01",
		"ready t:2026-01-05",
	}
	assert.Equal(t, want, descriptions(got))
}

func TestFilterFocusFutureDueButReadyThreshold(t *testing.T) {
	today := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// Due in the future but threshold already crossed: actionable.
	tasks := parseAll("prep trip due:2026-03-01 t:2026-01-01")
	assert.Len(t, FilterFocus(tasks, today), 1)
}

func TestPresetList(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	var presets []FilterPreset
	presets, created := AddPreset(presets, "urgent", FilterState{Priority: "A", Status: StatusActive}, now)
	presets, _ = AddPreset(presets, "errands", FilterState{Search: "context:store"}, now)

	require.Len(t, presets, 2)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, presets[0].ID, presets[1].ID)

	later := now.Add(time.Hour)
	updated := UpdatePreset(presets, created.ID, "", FilterState{Priority: "B"}, later)
	assert.Equal(t, "B", updated[0].State.Priority)
	assert.Equal(t, "urgent", updated[0].Name)
	assert.Equal(t, later, updated[0].UpdatedAt)
	// Original list untouched.
	assert.Equal(t, "A", presets[0].State.Priority)

	removed := RemovePreset(updated, created.ID)
	require.Len(t, removed, 1)
	assert.Equal(t, "errands", removed[0].Name)

	assert.Len(t, RemovePreset(updated, "nope"), 2)
}
