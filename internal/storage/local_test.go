package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPhotoStore_UploadAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "photos")
	store, err := storage.NewLocalPhotoStore(dir, "/photos")
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	ctx := context.Background()
	url, err := store.Upload(ctx, "3f2a", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/photos/3f2a", url)

	body, err := os.ReadFile(filepath.Join(dir, "3f2a"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "3f2a"))
	assert.True(t, os.IsNotExist(err))

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, url))
}

func TestLocalPhotoStore_UploadStaysInsideDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalPhotoStore(dir, "/photos/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "../../escape", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/photos/escape", url)

	_, err = os.Stat(filepath.Join(dir, "escape"))
	assert.NoError(t, err)
}

func TestLocalPhotoStore_DeleteForeignURL(t *testing.T) {
	store, err := storage.NewLocalPhotoStore(t.TempDir(), "/photos/")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "https://elsewhere.example/photos/abc")
	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestLocalPhotoStore_UploadReadFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalPhotoStore(dir, "/photos/")
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "broken", failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "broken"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalFileArchive_UploadFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	archive, err := storage.NewLocalFileArchive(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, archive.UploadFile(ctx, "Log_202403140506.csv", strings.NewReader("first")))
	require.NoError(t, archive.UploadFile(ctx, "Log_202403140506.csv", strings.NewReader("second")))

	body, err := os.ReadFile(filepath.Join(dir, "Log_202403140506.csv"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(body))
}
