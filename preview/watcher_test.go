package preview

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d3flow/mindflow/blob"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/event"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/render"
)

func mustBlobStore(t *testing.T, dir string) blob.BlobStore {
	t.Helper()
	store, err := blob.NewFilesystemBlobStore(dir)
	require.NoError(t, err)
	return store
}

func TestWatcher_PublishesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.csv")
	require.NoError(t, os.WriteFile(path, []byte("Root,A\n"), 0o644))

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	bus := event.NewInProcEventBus()
	got := make(chan any, 4)
	bus.Subscribe(ctx, constants.TopicPreviewReload, func(payload any) {
		got <- payload
	})

	w := &Watcher{
		Path:     path,
		Type:     model.Mindmap,
		Renderer: render.NewRenderer(),
		Bus:      bus,
		Debounce: 50 * time.Millisecond,
	}
	go w.Run(ctx)

	// The initial render fires one event before watching starts.
	select {
	case payload := <-got:
		msg, ok := payload.(map[string]any)
		require.True(t, ok, "expected decoded JSON object, got %T", payload)
		require.Equal(t, path, msg["path"])
		require.Equal(t, "mindmap", msg["type"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for initial reload event")
	}

	// A write after the watch is established triggers a debounced reload.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("Root,A\nRoot,B\n"), 0o644))

	select {
	case payload := <-got:
		msg, ok := payload.(map[string]any)
		require.True(t, ok)
		require.Equal(t, path, msg["path"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for reload after write")
	}
}

func TestWatcher_RefreshStoresHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.mmd")
	body := "flowchart TD\n    A[Start] --> B[End]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out := t.TempDir()
	w := &Watcher{
		Path:     path,
		Type:     model.Flowchart,
		Renderer: render.NewRenderer(),
		Blobs:    mustBlobStore(t, out),
	}
	w.refresh(context.Background())

	html, err := os.ReadFile(filepath.Join(out, "flow.html"))
	require.NoError(t, err)
	require.Contains(t, string(html), "mermaid")
}
