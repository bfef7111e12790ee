package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d3flow/mindflow/config"
	"github.com/d3flow/mindflow/constants"
)

func TestFilesystemBlobStore_PutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemBlobStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Put(ctx, []byte("<html></html>"), constants.ContentTypeHTML, "diagram.html")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "file://"))
	require.Equal(t, filepath.Join(dir, "diagram.html"), strings.TrimPrefix(url, "file://"))

	data, err := store.Get(ctx, url)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))

	// No leftover temp file.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFilesystemBlobStore_GeneratedName(t *testing.T) {
	store, err := NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)
	url, err := store.Put(context.Background(), []byte("x"), constants.ContentTypeText, "")
	require.NoError(t, err)
	require.Contains(t, url, "export-")
}

func TestFilesystemBlobStore_PathTraversalStripped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystemBlobStore(dir)
	require.NoError(t, err)
	url, err := store.Put(context.Background(), []byte("x"), constants.ContentTypeText, "../escape.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "escape.txt"), strings.TrimPrefix(url, "file://"))
}

func TestFilesystemBlobStore_GetBadURL(t *testing.T) {
	store, err := NewFilesystemBlobStore(t.TempDir())
	require.NoError(t, err)
	_, err = store.Get(context.Background(), "http://example.com/x")
	require.Error(t, err)
}

func TestNewBlobStoreFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Blob.Directory = t.TempDir()
	store, err := NewBlobStoreFromConfig(cfg)
	require.NoError(t, err)
	require.IsType(t, &FilesystemBlobStore{}, store)

	cfg.Blob.Driver = "gcs"
	_, err = NewBlobStoreFromConfig(cfg)
	require.Error(t, err)
}
