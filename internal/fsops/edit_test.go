package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/neboloop/fsgate/internal/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEditDryRunReturnsDiffWithoutTouchingFile(t *testing.T) {
	root := t.TempDir()
	ops := newTestOps(t, root)
	path := writeTemp(t, root, "f.txt", "hello world\n")

	out, err := ops.Edit(path, "world", "there", true)
	require.NoError(t, err)

	assert.Contains(t, out, "--- before")
	assert.Contains(t, out, "+++ after")
	assert.Contains(t, out, "-hello world")
	assert.Contains(t, out, "+hello there")
	assert.Equal(t, "hello world\n", readBack(t, path), "dry run must not modify the file")
}

func TestEditApplyReplacesAllOccurrences(t *testing.T) {
	root := t.TempDir()
	ops := newTestOps(t, root)
	path := writeTemp(t, root, "f.txt", "one fish two fish\nred fish\n")

	out, err := ops.Edit(path, "fish", "cat", false)
	require.NoError(t, err)
	assert.Equal(t, "File edited", out)
	assert.Equal(t, "one cat two cat\nred cat\n", readBack(t, path))
}

func TestEditIsIdempotentOnceApplied(t *testing.T) {
	root := t.TempDir()
	ops := newTestOps(t, root)
	path := writeTemp(t, root, "f.txt", "port: 8080\n")

	_, err := ops.Edit(path, "8080", "3000", false)
	require.NoError(t, err)

	// The fragment is gone now, so a second pass changes nothing.
	diff, err := ops.Edit(path, "8080", "3000", true)
	require.NoError(t, err)
	assert.Empty(t, diff)

	out, err := ops.Edit(path, "8080", "3000", false)
	require.NoError(t, err)
	assert.Equal(t, "File edited", out)
	assert.Equal(t, "port: 3000\n", readBack(t, path))
}

func TestEditAbsentFragmentIsNotAnError(t *testing.T) {
	root := t.TempDir()
	ops := newTestOps(t, root)
	path := writeTemp(t, root, "f.txt", "nothing to see\n")

	diff, err := ops.Edit(path, "missing", "x", true)
	require.NoError(t, err)
	assert.Empty(t, diff)

	out, err := ops.Edit(path, "missing", "x", false)
	require.NoError(t, err)
	assert.Equal(t, "File edited", out)
	assert.Equal(t, "nothing to see\n", readBack(t, path))
}

func TestEditMultilineFragment(t *testing.T) {
	root := t.TempDir()
	ops := newTestOps(t, root)
	path := writeTemp(t, root, "f.txt", "a\nb\nc\n")

	out, err := ops.Edit(path, "a\nb\n", "z\n", false)
	require.NoError(t, err)
	assert.Equal(t, "File edited", out)
	assert.Equal(t, "z\nc\n", readBack(t, path))
}

func TestEditMissingFile(t *testing.T) {
	root := t.TempDir()
	ops := newTestOps(t, root)

	_, err := ops.Edit(filepath.Join(root, "absent.txt"), "a", "b", false)
	assert.Error(t, err)
}

func TestEditOutsideSandboxDenied(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	ops := newTestOps(t, root)
	path := writeTemp(t, elsewhere, "f.txt", "data\n")

	_, err := ops.Edit(path, "data", "x", false)
	var nae *sandbox.NotAuthorizedError
	assert.True(t, errors.As(err, &nae), "want *NotAuthorizedError, got %v", err)
	assert.Equal(t, "data\n", readBack(t, path), "denied edit must not touch the file")
}
