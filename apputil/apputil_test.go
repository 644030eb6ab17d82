package apputil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "points.txt")
	require.False(t, FileExists(f))
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	require.True(t, FileExists(f))
	require.False(t, FileExists(dir), "a directory is not a file")
	require.False(t, FileExists(""))
}
