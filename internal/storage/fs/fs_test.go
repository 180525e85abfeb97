package fs

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReadDelete(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	relPath, err := storage.Save(strings.NewReader("image-bytes"), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(relPath))
	assert.False(t, filepath.IsAbs(relPath))

	f, err := storage.Read(relPath)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, storage.Delete(relPath))

	_, err = storage.Read(relPath)
	assert.Error(t, err)
}

func TestSave_UniqueNames(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := storage.Save(strings.NewReader("a"), "same.png")
	require.NoError(t, err)
	second, err := storage.Save(strings.NewReader("b"), "same.png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDelete_MissingFile(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	// already-released files must not fail the delete
	assert.NoError(t, storage.Delete("does-not-exist.jpg"))
}
