package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	return path
}

func TestDiscoverImageFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.png"))
	b := touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	nested := touch(t, filepath.Join(dir, "sub", "c.png"))

	files, err := discoverImageFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	files, err = discoverImageFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, nested}, files)
}

func TestDiscoverImageFiles_Patterns(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "b.jpg"))
	touch(t, filepath.Join(dir, "skip_c.png"))

	files, err := discoverImageFiles([]string{dir}, false, []string{"*.png"}, []string{"skip_*"})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestDiscoverImageFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.png"))

	// Explicit files bypass the extension filter but not the patterns.
	files, err := discoverImageFiles([]string{a}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)

	files, err = discoverImageFiles([]string{a}, false, nil, []string{"a.png"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverImageFiles_MissingPath(t *testing.T) {
	_, err := discoverImageFiles([]string{filepath.Join(t.TempDir(), "nope")}, false, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestShouldIncludeFile(t *testing.T) {
	assert.True(t, shouldIncludeFile("a.png", nil, nil))
	assert.True(t, shouldIncludeFile("a.png", []string{"*.png"}, nil))
	assert.False(t, shouldIncludeFile("a.png", []string{"*.jpg"}, nil))
	assert.False(t, shouldIncludeFile("a.png", []string{"*.png"}, []string{"a.*"}))
}
