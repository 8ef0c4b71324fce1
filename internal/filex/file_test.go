package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsurePrivateDir_CreatesNestedDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "glamfric", "data")

	got, err := EnsurePrivateDir(want)
	require.NoError(t, err)
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsurePrivateDir_RelativePathIsResolved(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	got, err := EnsurePrivateDir("data")
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(tmp)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(resolved, "data"), gotResolved)
}

func TestEnsurePrivateDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	first, err := EnsurePrivateDir(dir)
	require.NoError(t, err)
	second, err := EnsurePrivateDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsurePrivateDir_FailsIfFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := EnsurePrivateDir(path)
	require.Error(t, err)
}
