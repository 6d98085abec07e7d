package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureSubdDir_CreatesDirectoryUnderBase(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureSubdDir(tmp, "exports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "exports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	first, err := EnsureSubdDir(tmp, "exports")
	require.NoError(t, err)

	second, err := EnsureSubdDir(tmp, "exports")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "exports"), []byte("x"), 0o660))

	_, err := EnsureSubdDir(tmp, "exports")
	require.Error(t, err, "should fail when a file exists with the same name")
}
