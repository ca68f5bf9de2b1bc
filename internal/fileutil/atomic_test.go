package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, name, entry.Name(), "unexpected file left behind")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "results.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("Adam 612.5"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Adam 612.5", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	onlyFile(t, dir, "results.txt")
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.txt")
	require.NoError(t, WriteFileAtomic(path, []byte("initial"), DefaultPerm))
	require.NoError(t, WriteFileAtomic(path, []byte("updated content"), DefaultPerm))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "updated content", string(data))
}

func TestWriteAtomicCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs", "2024", "results.json")
	require.NoError(t, WriteJSONAtomic(path, map[string]float64{"Adam": 1.5}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Adam": 1.5}`, string(data))
}

func TestWriteAtomicFailedWriteKeepsOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	require.NoError(t, WriteFileAtomic(path, []byte("original"), DefaultPerm))

	boom := errors.New("encoder exploded")
	err := WriteAtomic(path, DefaultPerm, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	onlyFile(t, dir, "results.json")
}

func TestWriteJSONAtomicRejectsUnencodable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	err := WriteJSONAtomic(path, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
