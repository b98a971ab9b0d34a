package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "overlay.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestReadAbsentBeforeFirstWrite(t *testing.T) {
	store := newTestStore(t)

	doc, present, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, present)
	assert.Nil(t, doc)
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	want := []byte(`{"items":[],"lastUpdated":"2024-01-01T00:00:00Z"}`)
	require.NoError(t, store.WriteAll(context.Background(), want))

	doc, present, err := store.Read(context.Background())
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, want, doc)
}

func TestWriteReplacesWholesale(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteAll(context.Background(), []byte(`{"v":1}`)))
	require.NoError(t, store.WriteAll(context.Background(), []byte(`{"v":2}`)))

	doc, _, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), doc)
}

func TestReopenKeepsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.WriteAll(context.Background(), []byte(`{"v":1}`)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	doc, present, err := reopened.Read(context.Background())
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, []byte(`{"v":1}`), doc)
}
