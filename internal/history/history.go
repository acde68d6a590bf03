// Package history provides a bounded two-stack undo/redo manager over
// whole-state snapshots. In practice the snapshot type is the whole task
// document text, but nothing here depends on that.
package history

// DefaultMaxSize bounds the undo stack when no explicit capacity is given.
const DefaultMaxSize = 20

// History keeps the current state on top of the undo stack rather than in a
// separate variable. That keeps undo and redo symmetric: undo moves the top
// to the redo stack and exposes the entry below, redo moves it back.
//
// A History is caller-owned mutable state; callers sharing one document
// across several editors serialize their own pushes.
type History[T any] struct {
	undo    []T
	redo    []T
	maxSize int
}

// New creates a history bounded to maxSize snapshots; a non-positive size
// uses DefaultMaxSize.
func New[T any](maxSize int) *History[T] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History[T]{maxSize: maxSize}
}

// Push records a new current state and clears any redo future. When the undo
// stack outgrows the capacity the oldest snapshot is evicted.
func (h *History[T]) Push(state T) {
	h.undo = append(h.undo, state)
	h.redo = h.redo[:0]
	if len(h.undo) > h.maxSize {
		h.undo = append(h.undo[:0], h.undo[1:]...)
	}
}

// CanUndo reports whether an earlier state exists. A single pushed state is
// not undoable; there is nothing before it in the recorded history.
func (h *History[T]) CanUndo() bool {
	return len(h.undo) >= 2
}

// CanRedo reports whether an undone state can be reapplied.
func (h *History[T]) CanRedo() bool {
	return len(h.redo) > 0
}

// Undo moves the current state to the redo stack and returns the previous
// state, now current. The second return is false when nothing can be undone.
func (h *History[T]) Undo() (T, bool) {
	if !h.CanUndo() {
		var zero T
		return zero, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return h.undo[len(h.undo)-1], true
}

// Redo reapplies the most recently undone state and returns it; false when
// the redo stack is empty.
func (h *History[T]) Redo() (T, bool) {
	if len(h.redo) == 0 {
		var zero T
		return zero, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)
	return top, true
}

// Snapshot is the serializable form of a History, used to carry the stacks
// across process runs.
type Snapshot[T any] struct {
	Undo []T `json:"undo"`
	Redo []T `json:"redo"`
}

// Export copies both stacks out, oldest first.
func (h *History[T]) Export() Snapshot[T] {
	return Snapshot[T]{
		Undo: append([]T(nil), h.undo...),
		Redo: append([]T(nil), h.redo...),
	}
}

// Restore replaces both stacks from a snapshot, trimming the oldest undo
// entries when the snapshot exceeds the capacity.
func (h *History[T]) Restore(s Snapshot[T]) {
	h.undo = append(h.undo[:0], s.Undo...)
	h.redo = append(h.redo[:0], s.Redo...)
	if len(h.undo) > h.maxSize {
		h.undo = append([]T(nil), h.undo[len(h.undo)-h.maxSize:]...)
	}
}

// Clear empties both stacks.
func (h *History[T]) Clear() {
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// Len returns the number of recorded undo snapshots, current state included.
func (h *History[T]) Len() int {
	return len(h.undo)
}
