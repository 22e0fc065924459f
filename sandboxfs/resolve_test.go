package sandboxfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T) *Root {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "file.txt"), []byte("hi"), 0o644))
	root, err := NewRoot("/s", dir)
	require.NoError(t, err)
	return root
}

// S1: escape attempt via "..".
func TestResolveDotDotEscape(t *testing.T) {
	root := newTestRoot(t)
	_, err := root.Resolve("../etc/passwd", false)
	assert.ErrorIs(t, err, ErrEscapesSandbox)
}

func TestResolveDotDotWithinRootIsFine(t *testing.T) {
	root := newTestRoot(t)
	got, err := root.Resolve("sub/../sub/file.txt", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.RealPath, "sub", "file.txt"), got)
}

// S2: symlink escape, canonicalized by realpath.
func TestResolveSymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "passwd"), []byte("secret"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link")))

	root, err := NewRoot("/s", dir)
	require.NoError(t, err)

	_, err = root.Resolve("link/passwd", true)
	assert.ErrorIs(t, err, ErrEscapesSandbox)
}

func TestResolveSymlinkWithinRootFollowed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real", "f"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")))

	root, err := NewRoot("/s", dir)
	require.NoError(t, err)

	got, err := root.Resolve("link/f", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.RealPath, "real", "f"), got)
}

// The containment check must not be fooled by a sibling directory whose name
// has the root as a textual (non-separator-bounded) prefix.
func TestContainsRejectsPrefixSibling(t *testing.T) {
	root := &Root{RealPath: "/tmp/a"}
	assert.False(t, root.contains("/tmp/abc/evil"))
	assert.True(t, root.contains("/tmp/a"))
	assert.True(t, root.contains("/tmp/a/file"))
}

func TestResolveAbsoluteGuestPath(t *testing.T) {
	root := newTestRoot(t)
	// An absolute guest path is still anchored and checked the same way;
	// it is not implicitly relative to the host root.
	_, err := root.Resolve("/etc/passwd", false)
	assert.ErrorIs(t, err, ErrEscapesSandbox)
}

func TestResolveMissingFinalComponentTolerated(t *testing.T) {
	root := newTestRoot(t)
	got, err := root.Resolve("sub/new-file.txt", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.RealPath, "sub", "new-file.txt"), got)
}
