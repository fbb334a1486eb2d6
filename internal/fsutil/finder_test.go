package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/dynrefl/internal/fsutil"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, n)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("# test"), 0644))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hcl", "nested/b.hcl", "c.txt")

	files, err := fsutil.FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "nested", "b.hcl"),
	}, files)
}

func TestFindFilesByExtension_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = fsutil.FindFilesByExtension(t.TempDir(), "") })
}

func TestFindAll(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dir/a.hcl", "dir/b.hcl", "single.hcl", "other.txt")
	a := filepath.Join(root, "dir", "a.hcl")

	files, err := fsutil.FindAll([]string{
		filepath.Join(root, "dir"),
		a,
		filepath.Join(root, "single.hcl"),
		filepath.Join(root, "other.txt"),
		filepath.Join(root, "missing"),
	}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		a,
		filepath.Join(root, "dir", "b.hcl"),
		filepath.Join(root, "single.hcl"),
	}, files)
}
