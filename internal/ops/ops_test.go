package ops

import (
	"testing"
	"time"

	"github.com/a-marczewski/todotxt/internal/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 1, 10, 15, 30, 0, 0, time.UTC)

func TestToggleCompletionComplete(t *testing.T) {
	task := todo.ParseLine("(A) call mom @phone")
	result := ToggleCompletion(task, today)

	assert.True(t, result.Task.Completed)
	assert.Equal(t, "2026-01-10", result.Task.CompletionDate)
	// Priority is archived into a pri: tag, not lost.
	assert.Empty(t, result.Task.Priority)
	assert.Equal(t, "A", result.Task.Tags[todo.TagPriority])
	assert.Contains(t, result.Task.Description, "pri:A")
	assert.Nil(t, result.Recurring)

	// Input untouched.
	assert.False(t, task.Completed)
	assert.Equal(t, "A", task.Priority)
}

func TestToggleCompletionUncomplete(t *testing.T) {
	task := todo.ParseLine("x 2026-01-08 call mom @phone pri:A")
	result := ToggleCompletion(task, today)

	assert.False(t, result.Task.Completed)
	assert.Empty(t, result.Task.CompletionDate)
	assert.Equal(t, "A", result.Task.Priority)
	_, hasPri := result.Task.Tags[todo.TagPriority]
	assert.False(t, hasPri)
	assert.NotContains(t, result.Task.Description, "pri:A")
	assert.Nil(t, result.Recurring)
}

func TestToggleCompletionRoundTripRestoresPriority(t *testing.T) {
	task := todo.ParseLine("(B) water plants")
	completed := ToggleCompletion(task, today).Task
	restored := ToggleCompletion(completed, today).Task

	assert.Equal(t, "B", restored.Priority)
	assert.False(t, restored.Completed)
}

func TestToggleCompletionGeneratesRecurring(t *testing.T) {
	task := todo.ParseLine("(A) pay rent rec:1m due:2026-02-01")
	result := ToggleCompletion(task, today)

	require.NotNil(t, result.Recurring)
	next := *result.Recurring
	assert.False(t, next.Completed)
	assert.Equal(t, "2026-01-10", next.CreationDate)
	assert.Equal(t, "2026-02-10", next.Tags[todo.TagDue])
	assert.Empty(t, next.Priority)
	_, hasPri := next.Tags[todo.TagPriority]
	assert.False(t, hasPri)

	// Un-completing never generates one.
	done := todo.ParseLine("x 2026-01-08 pay rent rec:1m due:2026-02-01")
	assert.Nil(t, ToggleCompletion(done, today).Recurring)
}

func TestCreateTask(t *testing.T) {
	t.Run("defaults threshold to today", func(t *testing.T) {
		task := CreateTask("Buy milk +Grocery @store", "B", "2026-01-20", "", today)

		assert.False(t, task.Completed)
		assert.Equal(t, "B", task.Priority)
		assert.Equal(t, "2026-01-10", task.CreationDate)
		assert.Equal(t, []string{"Grocery"}, task.Projects)
		assert.Equal(t, []string{"store"}, task.Contexts)
		assert.Equal(t, "2026-01-20", task.Tags[todo.TagDue])
		assert.Equal(t, "2026-01-10", task.Tags[todo.TagThreshold])
		// Tags live in the description as literal text.
		assert.Contains(t, task.Description, "due:2026-01-20")
		assert.Contains(t, task.Description, "t:2026-01-10")
	})

	t.Run("explicit threshold wins", func(t *testing.T) {
		task := CreateTask("defer me", "", "", "2026-02-01", today)
		assert.Equal(t, "2026-02-01", task.Tags[todo.TagThreshold])
	})

	t.Run("round trips through the parser", func(t *testing.T) {
		task := CreateTask("Buy milk +Grocery", "A", "2026-01-20", "", today)
		again := todo.ParseLine(todo.Serialize(task))
		assert.Equal(t, task.Priority, again.Priority)
		assert.Equal(t, task.CreationDate, again.CreationDate)
		assert.Equal(t, task.Description, again.Description)
		assert.Equal(t, task.Tags, again.Tags)
	})
}

func TestEditTask(t *testing.T) {
	base := todo.ParseLine("(A) 2026-01-01 pay rent +Home due:2026-02-01 t:2026-01-25")

	strPtr := func(s string) *string { return &s }

	t.Run("absent fields pass through", func(t *testing.T) {
		got := EditTask(base, TaskUpdates{})
		assert.Equal(t, base.Priority, got.Priority)
		assert.Equal(t, base.Description, got.Description)
		assert.Equal(t, base.CreationDate, got.CreationDate)
	})

	t.Run("description update re-derives structure", func(t *testing.T) {
		got := EditTask(base, TaskUpdates{Description: strPtr("pay rent +Finance @bank")})
		assert.Equal(t, []string{"Finance"}, got.Projects)
		assert.Equal(t, []string{"bank"}, got.Contexts)
		assert.Equal(t, "A", got.Priority)
	})

	t.Run("explicit empty priority clears it", func(t *testing.T) {
		got := EditTask(base, TaskUpdates{Priority: strPtr("")})
		assert.Empty(t, got.Priority)
	})

	t.Run("due date rewrite replaces the literal token", func(t *testing.T) {
		got := EditTask(base, TaskUpdates{DueDate: strPtr("2026-03-01")})
		assert.Equal(t, "2026-03-01", got.Tags[todo.TagDue])
		assert.NotContains(t, got.Description, "due:2026-02-01")
		assert.Contains(t, got.Description, "due:2026-03-01")
	})

	t.Run("empty due date removes the tag", func(t *testing.T) {
		got := EditTask(base, TaskUpdates{DueDate: strPtr("")})
		_, ok := got.Tags[todo.TagDue]
		assert.False(t, ok)
		assert.NotContains(t, got.Description, "due:")
	})

	t.Run("threshold rewrite", func(t *testing.T) {
		got := EditTask(base, TaskUpdates{ThresholdDate: strPtr("2026-01-28")})
		assert.Equal(t, "2026-01-28", got.Tags[todo.TagThreshold])
	})
}

func TestRemoveFromList(t *testing.T) {
	tasks := []todo.Task{
		{Description: "one"},
		{Description: "two"},
		{Description: "three"},
	}

	got := RemoveFromList(tasks, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Description)
	assert.Equal(t, "three", got[1].Description)

	assert.Equal(t, tasks, RemoveFromList(tasks, -1))
	assert.Equal(t, tasks, RemoveFromList(tasks, 3))
}
