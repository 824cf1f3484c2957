package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

func TestKeyValueStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore()

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", json.RawMessage(`{"a":1}`)))
	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(val))
	assert.Equal(t, []string{"k"}, store.Keys())

	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Remove(ctx, "k"))
	assert.Empty(t, store.Keys())
}

func TestKeyValueStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore()
	raw := json.RawMessage(`"abc"`)

	require.NoError(t, store.Set(ctx, "k", raw))
	raw[1] = 'z'

	val, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(val))
}

func TestReportHistoryStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewReportHistoryStore()

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		require.NoError(t, store.Record(ctx, domain.ReportRecord{FileName: name}))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c.pdf", all[0].FileName)

	two, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, "b.pdf", two[1].FileName)
}
