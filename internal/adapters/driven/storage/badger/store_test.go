package badger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_InMemory(t *testing.T) {
	store := setupTestStore(t)
	assert.Equal(t, ":memory:", store.Path())
}

func TestNewStore_OnDiskReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, store.Path())
	require.NoError(t, store.KeyValueStore().Set(ctx, domain.InspectionKey, json.RawMessage(`{"id":"x"}`)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(Options{Dir: dir})
	require.NoError(t, err)
	defer reopened.Close()

	val, ok, err := reopened.KeyValueStore().Get(ctx, domain.InspectionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"x"}`, string(val))
}

func TestKVStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	kv := setupTestStore(t).KeyValueStore()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", json.RawMessage(`[1,2]`)))
	require.NoError(t, kv.Set(ctx, "k", json.RawMessage(`[3]`)))
	val, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[3]`, string(val))

	require.NoError(t, kv.Remove(ctx, "k"))
	_, ok, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoryStore_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	history := store.ReportHistoryStore()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, history.Record(ctx, domain.ReportRecord{FileName: "old.pdf", GeneratedAt: base}))
	require.NoError(t, history.Record(ctx, domain.ReportRecord{FileName: "new.pdf", GeneratedAt: base.Add(time.Hour)}))
	require.NoError(t, store.KeyValueStore().Set(ctx, domain.InspectionKey, json.RawMessage(`{}`)))

	records, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new.pdf", records[0].FileName)

	records, err = history.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
}
