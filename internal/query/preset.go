package query

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FilterState is the whole configuration of a task view: which priority,
// search query, grouping, sort and status filter are active. It is passed by
// value into the filter functions and has no behavior of its own.
type FilterState struct {
	Priority      string   `json:"priority,omitempty"`
	Search        string   `json:"search,omitempty"`
	Group         string   `json:"group,omitempty"`
	Sort          string   `json:"sort,omitempty"`
	Status        string   `json:"status,omitempty"`
	SelectionMode bool     `json:"selection_mode,omitempty"`
	SelectedIDs   []string `json:"selected_ids,omitempty"`
}

// Status filter values.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// FilterPreset is a named, saved FilterState.
type FilterPreset struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	State     FilterState `json:"filter_state"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewPresetID builds a preset identifier from the creation timestamp plus a
// random component, unique within any list.
func NewPresetID(now time.Time) string {
	return fmt.Sprintf("preset-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// AddPreset appends a new preset built from the given name and state,
// returning the new list and the created preset. The input list is never
// modified.
func AddPreset(presets []FilterPreset, name string, state FilterState, now time.Time) ([]FilterPreset, FilterPreset) {
	p := FilterPreset{
		ID:        NewPresetID(now),
		Name:      name,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
	out := append(append([]FilterPreset(nil), presets...), p)
	return out, p
}

// UpdatePreset replaces the state (and name, when non-empty) of the preset
// with the given id. An unknown id returns the input unchanged.
func UpdatePreset(presets []FilterPreset, id, name string, state FilterState, now time.Time) []FilterPreset {
	out := append([]FilterPreset(nil), presets...)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if name != "" {
			out[i].Name = name
		}
		out[i].State = state
		out[i].UpdatedAt = now
	}
	return out
}

// RemovePreset drops the preset with the given id; an unknown id returns a
// copy of the input.
func RemovePreset(presets []FilterPreset, id string) []FilterPreset {
	out := make([]FilterPreset, 0, len(presets))
	for _, p := range presets {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

