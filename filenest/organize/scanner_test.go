package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_ListTopLevel(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt"))
	touch(t, filepath.Join(dir, "b.jpg"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	touch(t, filepath.Join(dir, "sub", "nested.txt"))

	s := NewScanner()
	paths, err := s.ListTopLevel(dir)
	require.NoError(t, err)

	// Files and directories alike, nothing recursive.
	assert.Len(t, paths, 3)
	assert.Contains(t, paths, filepath.Join(dir, "a.txt"))
	assert.Contains(t, paths, filepath.Join(dir, "b.jpg"))
	assert.Contains(t, paths, filepath.Join(dir, "sub"))
	assert.NotContains(t, paths, filepath.Join(dir, "sub", "nested.txt"))

	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
	}
}

func TestScanner_EmptyDirectory(t *testing.T) {
	s := NewScanner()
	paths, err := s.ListTopLevel(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestScanner_DirectoryNotFound(t *testing.T) {
	s := NewScanner()
	_, err := s.ListTopLevel(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestScanner_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	touch(t, file)

	s := NewScanner()
	_, err := s.ListTopLevel(file)
	assert.ErrorIs(t, err, ErrNotADirectory)
}
