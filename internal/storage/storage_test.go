package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestKVImplementations(t *testing.T) {
	stores := map[string]func(t *testing.T) KV{
		"sqlite": func(t *testing.T) KV { return openTestDB(t) },
		"memory": func(t *testing.T) KV { return NewMemory() },
	}

	for name, newKV := range stores {
		t.Run(name, func(t *testing.T) {
			kv := newKV(t)

			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok, "absent key should report not present")

			require.NoError(t, kv.Set("b", "1"))
			require.NoError(t, kv.Set("a", "2"))
			require.NoError(t, kv.Set("b", "3"))

			v, ok, err := kv.Get("b")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "3", v, "second Set should overwrite")

			keys, err := kv.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, kv.Delete("a"))
			err = kv.Delete("a")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kotoba.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Set("cardapp_last_theme_v1", "food"))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	v, ok, err := db.Get("cardapp_last_theme_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "food", v)
}

func TestGetJSON(t *testing.T) {
	kv := NewMemory()

	t.Run("absent key keeps default", func(t *testing.T) {
		dst := map[string]string{"x": "y"}
		assert.False(t, GetJSON(kv, "nothing", &dst))
		assert.Equal(t, map[string]string{"x": "y"}, dst)
	})

	t.Run("malformed value keeps default", func(t *testing.T) {
		require.NoError(t, kv.Set("broken", "{not json"))
		var dst []string
		assert.False(t, GetJSON(kv, "broken", &dst))
		assert.Nil(t, dst)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, SetJSON(kv, "list", []string{"a", "b"}))
		var dst []string
		assert.True(t, GetJSON(kv, "list", &dst))
		assert.Equal(t, []string{"a", "b"}, dst)
	})
}
