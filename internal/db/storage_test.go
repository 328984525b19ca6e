package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]LocalStorage {
	t.Helper()
	ctx := context.Background()

	sqlite, err := OpenSQLiteStorage(ctx, "file:"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	file, err := NewFileStorage(filepath.Join(t.TempDir(), "storage"))
	require.NoError(t, err)

	return map[string]LocalStorage{
		"memory": NewMemoryStorage(),
		"sqlite": sqlite,
		"file":   file,
	}
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := s.GetItem(ctx, "services")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.SetItem(ctx, "services", []byte(`[{"id":1}]`)))
			require.NoError(t, s.SetItem(ctx, "services", []byte(`[{"id":2}]`)))

			got, found, err := s.GetItem(ctx, "services")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `[{"id":2}]`, string(got))

			require.NoError(t, s.RemoveItem(ctx, "services"))
			require.NoError(t, s.RemoveItem(ctx, "services"))
			_, found, err = s.GetItem(ctx, "services")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestLocalStorage_EmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := s.GetItem(ctx, "")
			assert.ErrorIs(t, err, ErrEmptyKey)
			assert.ErrorIs(t, s.SetItem(ctx, "", []byte("x")), ErrEmptyKey)
			assert.ErrorIs(t, s.RemoveItem(ctx, ""), ErrEmptyKey)
		})
	}
}

func TestMemoryStorage_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	value := []byte("abc")
	require.NoError(t, m.SetItem(ctx, "k", value))
	value[0] = 'z'

	got, _, err := m.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStorage_RejectsPathKeys(t *testing.T) {
	f, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, f.SetItem(context.Background(), "../escape", []byte("x")))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "cassandra"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
