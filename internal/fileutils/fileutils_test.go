package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"gagyebu/ledger-csv/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	touch(t, testFile)

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	touch(t, testFile)

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestCreateFile_MakesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "2024", "ledger.csv")

	f, err := fileutils.CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, fileutils.FileExists(path))
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := fileutils.OpenFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestListFilesWithExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.csv"))
	touch(t, filepath.Join(dir, "a.XLSX"))
	touch(t, filepath.Join(dir, "notes.md"))
	touch(t, filepath.Join(dir, "sub", "c.csv"))

	files, err := fileutils.ListFilesWithExtension(dir, ".csv", ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.XLSX"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "sub", "c.csv"),
	}, files)

	_, err = fileutils.ListFilesWithExtension(filepath.Join(dir, "missing"), ".csv")
	assert.Error(t, err)
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.txt")
	touch(t, single)
	touch(t, filepath.Join(dir, "months", "02.csv"))
	touch(t, filepath.Join(dir, "months", "01.csv"))

	files, err := fileutils.ExpandInputs([]string{single, filepath.Join(dir, "months")}, ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(dir, "months", "01.csv"),
		filepath.Join(dir, "months", "02.csv"),
	}, files)

	_, err = fileutils.ExpandInputs([]string{filepath.Join(dir, "nope.csv")}, ".csv")
	assert.Error(t, err)
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "out/가계부.csv", fileutils.ReplaceExtension("out/가계부.xlsx", ".csv"))
	assert.Equal(t, "ledger.csv", fileutils.ReplaceExtension("ledger", ".csv"))
}
