package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/a-marczewski/todotxt/internal/query"
)

// PresetStore persists filter presets. The filter state itself is stored as
// JSON so the schema does not change when the filter model grows.
type PresetStore struct {
	db *DB
}

// NewPresetStore creates a preset store on the given database.
func NewPresetStore(db *DB) *PresetStore {
	return &PresetStore{db: db}
}

// Save inserts the preset, or replaces it when the id already exists.
func (s *PresetStore) Save(p query.FilterPreset) error {
	state, err := json.Marshal(p.State)
	if err != nil {
		return fmt.Errorf("failed to encode preset state: %w", err)
	}

	_, err = s.db.conn.Exec(`
		INSERT INTO filter_presets (id, name, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			state = excluded.state,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, string(state), p.CreatedAt.Unix(), p.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save preset %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the preset with the given id. A missing id returns sql.ErrNoRows.
func (s *PresetStore) Get(id string) (query.FilterPreset, error) {
	row := s.db.conn.QueryRow(`
		SELECT id, name, state, created_at, updated_at
		FROM filter_presets WHERE id = ?
	`, id)
	return scanPreset(row)
}

// List returns all presets ordered by creation time.
func (s *PresetStore) List() ([]query.FilterPreset, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, name, state, created_at, updated_at
		FROM filter_presets ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	var presets []query.FilterPreset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return presets, nil
}

// Delete removes the preset with the given id. Deleting an unknown id is
// not an error.
func (s *PresetStore) Delete(id string) error {
	if _, err := s.db.conn.Exec("DELETE FROM filter_presets WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete preset %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (query.FilterPreset, error) {
	var (
		p         query.FilterPreset
		state     string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&p.ID, &p.Name, &state, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return query.FilterPreset{}, err
		}
		return query.FilterPreset{}, fmt.Errorf("failed to scan preset: %w", err)
	}
	if err := json.Unmarshal([]byte(state), &p.State); err != nil {
		return query.FilterPreset{}, fmt.Errorf("failed to decode preset state: %w", err)
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return p, nil
}
