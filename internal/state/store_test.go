package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "state.json"), zap.NewNop())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	pos := 473
	checked := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC)

	require.NoError(t, store.Save(State{LastPosition: &pos, LastCheckedUTC: checked}))

	got := store.Load()
	require.NotNil(t, got.LastPosition)
	assert.Equal(t, 473, *got.LastPosition)
	assert.True(t, got.LastCheckedUTC.Equal(checked))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	got := store.Load()
	assert.Nil(t, got.LastPosition)
	assert.True(t, got.LastCheckedUTC.IsZero())
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	got := store.Load()
	assert.Nil(t, got.LastPosition)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	pos := 5
	require.NoError(t, store.Save(State{LastPosition: &pos, LastCheckedUTC: time.Now().UTC()}))

	_, err := os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSaveOmitsAbsentPosition(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(State{LastCheckedUTC: time.Now().UTC()}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	_, present := raw["last_position"]
	assert.False(t, present, "nil position must not be serialized")
	_, present = raw["last_checked_utc"]
	assert.True(t, present)
}

func TestSaveReplacesPreviousRecord(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	first, second := 500, 473

	require.NoError(t, store.Save(State{LastPosition: &first, LastCheckedUTC: time.Now().UTC()}))
	require.NoError(t, store.Save(State{LastPosition: &second, LastCheckedUTC: time.Now().UTC()}))

	got := store.Load()
	require.NotNil(t, got.LastPosition)
	assert.Equal(t, 473, *got.LastPosition)
}
