package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellStateStore(t *testing.T) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		store := NewShellStateStore(filepath.Join(t.TempDir(), "nested", "state.json"))

		var fp [32]byte
		fp[0], fp[31] = 0xab, 0x01
		state := &ShellState{
			Document: "scene.gltf",
			Marks:    []Mark{NewMark("/nodes/0", fp)},
		}
		require.NoError(t, store.Save(state))
		assert.Equal(t, StateVersion, state.Version)
		assert.False(t, state.SavedAt.IsZero())

		got, err := store.Load()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "scene.gltf", got.Document)
		require.Len(t, got.Marks, 1)
		assert.Equal(t, "/nodes/0", got.Marks[0].Pointer)

		digest, err := got.Marks[0].Digest()
		require.NoError(t, err)
		assert.Equal(t, fp, digest)
		assert.WithinDuration(t, state.SavedAt, got.SavedAt, time.Second)
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		store := NewShellStateStore(filepath.Join(t.TempDir(), "absent.json"))
		got, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("LoadWrongVersion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 7}`), 0o644))
		_, err := NewShellStateStore(path).Load()
		assert.ErrorContains(t, err, "version 7")
	})

	t.Run("LoadCorrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
		_, err := NewShellStateStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewShellStateStore(filepath.Join(t.TempDir(), "state.json"))
		require.NoError(t, store.Save(&ShellState{}))
		require.NoError(t, store.Clear())
		assert.NoFileExists(t, store.Path())
		assert.NoError(t, store.Clear())
	})
}

func TestMarkDigest(t *testing.T) {
	_, err := Mark{Pointer: "/a", Fingerprint: "zz"}.Digest()
	assert.Error(t, err)

	_, err = Mark{Pointer: "/a", Fingerprint: "abcd"}.Digest()
	assert.ErrorContains(t, err, "2 bytes")
}
