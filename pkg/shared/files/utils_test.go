package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBySuffixes(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.plist"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.PLIST"), []byte("x"), 0644))

	found, err := FindBySuffixes(dir, []string{".plist"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.plist"), filepath.Join(sub, "a.PLIST")}, found)
}

func TestFindBySuffixesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	found, err := FindBySuffixes(path, []string{".json"})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, found)

	found, err = FindBySuffixes(path, []string{".plist"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindBySuffixesMissingPath(t *testing.T) {
	_, err := FindBySuffixes(filepath.Join(t.TempDir(), "nope"), []string{".json"})
	require.Error(t, err)
}

func TestEnsureWithinRoot(t *testing.T) {
	root := t.TempDir()

	inside, err := EnsureWithinRoot(root, filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b"), inside)

	_, err = EnsureWithinRoot(root, filepath.Join(root, "..", "outside"))
	require.Error(t, err)
}

func TestWriteJsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJsonFile(path, []byte(`{"ok":true}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestCreateFolderIfNotExists(t *testing.T) {
	target := filepath.Join(t.TempDir(), "deep", "nested")
	require.NoError(t, CreateFolderIfNotExists(target))
	require.NoError(t, CreateFolderIfNotExists(target)) // idempotent

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
