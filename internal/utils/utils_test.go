package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, IsFile(file))
	assert.False(t, IsDirectory(file))
	assert.True(t, IsDirectory(dir))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
	assert.False(t, IsDirectory(filepath.Join(dir, "missing")))
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("writes content", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.txt")

		err := WriteFileAtomic(target, func(w io.Writer) error {
			_, err := io.WriteString(w, "hello")
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("leaves nothing behind on failure", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "out.txt")
		boom := errors.New("boom")

		err := WriteFileAtomic(target, func(w io.Writer) error {
			io.WriteString(w, "partial")
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsFile(target))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("keeps previous file on failure", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

		err := WriteFileAtomic(target, func(w io.Writer) error {
			return errors.New("nope")
		})
		require.Error(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})

	t.Run("missing directory is an IOError", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "nope", "out.txt")

		err := WriteFileAtomic(target, func(w io.Writer) error { return nil })

		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "create", ioErr.Op)
		assert.Equal(t, target, ioErr.Path)
	})
}
