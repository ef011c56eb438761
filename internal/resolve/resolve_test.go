package resolve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdmermaid/internal/resolve"
)

func testFS(t *testing.T) *memoryfs.FS {
	t.Helper()

	fsys := memoryfs.New()

	require.NoError(t, fsys.MkdirAll("docs/sub", 0o755))
	require.NoError(t, fsys.WriteFile("README.md", []byte("# readme"), 0o644))
	require.NoError(t, fsys.WriteFile("docs/a.md", []byte("a"), 0o644))
	require.NoError(t, fsys.WriteFile("docs/sub/b.md", []byte("b"), 0o644))
	require.NoError(t, fsys.WriteFile("docs/sub/c.txt", []byte("c"), 0o644))

	return fsys
}

func TestExpandRecursiveGlob(t *testing.T) {
	files, err := resolve.Expand(testFS(t), []string{"docs/**.md"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"docs/a.md", "docs/sub/b.md"}, files)
}

func TestExpandSingleLevelGlob(t *testing.T) {
	files, err := resolve.Expand(testFS(t), []string{"*.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, files)

	files, err = resolve.Expand(testFS(t), []string{"docs/*.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md"}, files)
}

func TestExpandLiteralPaths(t *testing.T) {
	files, err := resolve.Expand(testFS(t), []string{"README.md", "missing.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, files)
}

func TestExpandDirectoryIsNotAFile(t *testing.T) {
	files, err := resolve.Expand(testFS(t), []string{"docs"})

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExpandDeduplicates(t *testing.T) {
	files, err := resolve.Expand(testFS(t), []string{"README.md", "*.md", "README.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, files)
}

func TestExpandPreservesPatternOrder(t *testing.T) {
	files, err := resolve.Expand(testFS(t), []string{"docs/a.md", "README.md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md", "README.md"}, files)
}

func TestExpandInvalidPattern(t *testing.T) {
	_, err := resolve.Expand(testFS(t), []string{"docs/[.md"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestExpandOS(t *testing.T) {
	// EvalSymlinks keeps the absolute-path dedupe check stable on platforms
	// where the temp dir is behind a symlink.
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.md"), []byte("t"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "a.md"), []byte("a"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() { _ = os.Chdir(wd) })

	files, err := resolve.ExpandOS([]string{"*.md", "docs/*.md"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"top.md", filepath.Join("docs", "a.md")}, files)

	// Absolute literal paths resolve and dedupe against their relative twins.
	files, err = resolve.ExpandOS([]string{"top.md", filepath.Join(dir, "top.md")})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = resolve.ExpandOS([]string{"nothing-*.md"})
	require.NoError(t, err)
	assert.Empty(t, files)
}
