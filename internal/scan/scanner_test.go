package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestScrapFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Scrap_beta_20250102.txt")
	touch(t, dir, "Scrap_alpha_20250101.txt")
	touch(t, dir, "notes.txt")
	touch(t, dir, "Scrap_binary.dat")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Scrap_dir.txt"), 0o755))

	files, err := ScrapFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Scrap_alpha_20250101.txt", files[0].Name)
	assert.Equal(t, "Scrap_beta_20250102.txt", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "Scrap_alpha_20250101.txt"), files[0].Path)
	assert.Equal(t, int64(1), files[0].Size)
}

func TestScrapFilesEmptyDir(t *testing.T) {
	files, err := ScrapFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScrapFilesMissingDir(t *testing.T) {
	files, err := ScrapFiles(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
