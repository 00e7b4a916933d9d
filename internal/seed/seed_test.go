package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/memstore"
)

const validSeed = `[
  {"id": "a", "title": "Write report", "description": "quarterly numbers", "status": "completed",
   "created_at": "2025-01-02T15:04:05Z"},
  {"title": "Buy milk", "description": "two litres"}
]`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse_Valid(t *testing.T) {
	entries, err := Parse([]byte(validSeed))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0].Task()
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, model.StatusCompleted, first.Status)
	assert.Equal(t, time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC), first.CreatedAt)

	second := entries[1].Task()
	assert.Empty(t, second.ID)
	assert.Empty(t, second.Status)
	assert.True(t, second.CreatedAt.IsZero())
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"not an array", `{"title": "x"}`, "invalid seed file"},
		{"missing description", `[{"title": "x"}]`, "/0"},
		{"blank title", `[{"title": "  ", "description": "d"}]`, "/0/title"},
		{"bad status", `[{"title": "t", "description": "d", "status": "done"}]`, "/0/status"},
		{"unknown field", `[{"title": "t", "description": "d", "owner": "me"}]`, "/0"},
		{"malformed json", `[{`, "json unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	store := memstore.New(memstore.WithClock(func() time.Time { return now }))

	n, err := Load(writeSeed(t, validSeed), store)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "1700000000000", all[1].ID)
	assert.Equal(t, model.StatusPending, all[1].Status)
	assert.Equal(t, now, all[1].CreatedAt)
}

func TestLoad_EmptyPath(t *testing.T) {
	n, err := Load("", memstore.New())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoad_DuplicateIDs(t *testing.T) {
	p := writeSeed(t, `[
  {"id": "x", "title": "a", "description": "a"},
  {"id": "x", "title": "b", "description": "b"}
]`)

	_, err := Load(p, memstore.New())
	assert.ErrorIs(t, err, memstore.ErrDuplicate)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), memstore.New())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
