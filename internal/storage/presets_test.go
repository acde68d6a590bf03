package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-marczewski/todotxt/internal/query"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "todotxt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todotxt.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, db.Close())
}

func TestPresetSaveAndGet(t *testing.T) {
	store := NewPresetStore(openTestDB(t))

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	p := query.FilterPreset{
		ID:   "preset-1",
		Name: "work overdue",
		State: query.FilterState{
			Priority: "A",
			Search:   "+work due:2026-08-28",
			Status:   query.StatusActive,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Save(p))

	got, err := store.Get("preset-1")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPresetGetMissing(t *testing.T) {
	store := NewPresetStore(openTestDB(t))

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPresetSaveReplacesExisting(t *testing.T) {
	store := NewPresetStore(openTestDB(t))

	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	p := query.FilterPreset{ID: "preset-1", Name: "old", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, store.Save(p))

	p.Name = "new"
	p.State = query.FilterState{Search: "@home"}
	p.UpdatedAt = created.Add(24 * time.Hour)
	require.NoError(t, store.Save(p))

	got, err := store.Get("preset-1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
	assert.Equal(t, "@home", got.State.Search)
	assert.Equal(t, created, got.CreatedAt)

	presets, err := store.List()
	require.NoError(t, err)
	assert.Len(t, presets, 1)
}

func TestPresetListOrderedByCreation(t *testing.T) {
	store := NewPresetStore(openTestDB(t))

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"preset-c", "preset-a", "preset-b"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Save(query.FilterPreset{ID: id, Name: id, CreatedAt: ts, UpdatedAt: ts}))
	}

	presets, err := store.List()
	require.NoError(t, err)
	require.Len(t, presets, 3)
	assert.Equal(t, "preset-c", presets[0].ID)
	assert.Equal(t, "preset-a", presets[1].ID)
	assert.Equal(t, "preset-b", presets[2].ID)
}

func TestPresetDelete(t *testing.T) {
	store := NewPresetStore(openTestDB(t))

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(query.FilterPreset{ID: "preset-1", Name: "x", CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, store.Delete("preset-1"))
	require.NoError(t, store.Delete("preset-1"))

	presets, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, presets)
}
