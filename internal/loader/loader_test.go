package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotogrip/internal/loader"
)

// jpegHeader is enough magic for content sniffing; there is no EXIF block,
// which exercises the fallback path.
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestIsImage(t *testing.T) {
	dir := t.TempDir()

	jpg := writeFile(t, dir, "photo.jpg", jpegHeader)
	png := writeFile(t, dir, "shot.png", pngHeader)
	txt := writeFile(t, dir, "notes.txt", []byte("not a photo"))

	assert.True(t, loader.IsImage(jpg))
	assert.True(t, loader.IsImage(png))
	assert.False(t, loader.IsImage(txt))
	assert.False(t, loader.IsImage(filepath.Join(dir, "missing.jpg")))
}

func TestLoadEntryFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", jpegHeader)

	modTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, modTime, modTime))

	entry, err := loader.LoadEntry(path)
	require.NoError(t, err)

	assert.Equal(t, path, entry.Path)
	assert.True(t, entry.Time.Equal(modTime))
	assert.Equal(t, int64(len(jpegHeader)), entry.Size)
	assert.Nil(t, entry.Pos)
	assert.False(t, entry.HasNewGPSData())
}

func TestLoadEntryMissingFile(t *testing.T) {
	_, err := loader.LoadEntry(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestScanDirSkipsNonImagesAndHiddenDirs(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "a.jpg", jpegHeader)
	writeFile(t, dir, "notes.txt", []byte("not a photo"))

	sub := filepath.Join(dir, "trip")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFile(t, sub, "b.jpg", jpegHeader)

	hidden := filepath.Join(dir, ".cache")
	require.NoError(t, os.Mkdir(hidden, 0755))
	writeFile(t, hidden, "thumb.jpg", jpegHeader)

	entries, err := loader.ScanDir(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, filepath.Base(e.Path))
	}
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, names)
}

func TestScanDirRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", jpegHeader)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.ScanDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMetadataDumpWithoutExif(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", jpegHeader)

	dump, err := loader.MetadataDump(path)
	require.NoError(t, err)

	assert.Contains(t, dump, path)
	assert.Contains(t, dump, "no EXIF data")
}
