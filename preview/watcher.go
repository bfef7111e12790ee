package preview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/d3flow/mindflow/blob"
	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/event"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/render"
	"github.com/d3flow/mindflow/utils"
)

// Watcher re-renders a source file whenever it changes, stores the HTML
// through the blob store and publishes a reload event for live previews.
type Watcher struct {
	Path     string
	Type     model.DiagramType
	Renderer *render.Renderer
	Bus      event.EventBus
	Blobs    blob.BlobStore
	// Debounce collapses the bursts of write events editors produce.
	Debounce time.Duration
}

// DetectType guesses the diagram type of a file from its extension and, for
// CSV, its header row.
func DetectType(path string) (model.DiagramType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mmd", ".mermaid":
		return model.Flowchart, nil
	case ".md", ".markdown":
		return model.Mindmap, nil
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		header := strings.ToLower(firstLine(string(data)))
		if strings.Contains(header, constants.ColumnStart) && strings.Contains(header, constants.ColumnTask) {
			return model.Gantt, nil
		}
		return model.Mindmap, nil
	}
	return "", utils.Errorf("cannot detect diagram type of %s, pass it explicitly", path)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Run renders once immediately, then blocks watching the file until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Debounce <= 0 {
		w.Debounce = 250 * time.Millisecond
	}
	w.refresh(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory: editors typically replace the file on save,
	// which would drop a watch on the file itself.
	dir := filepath.Dir(w.Path)
	if err := fw.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(w.Path)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			utils.Warn("watch error: %v", err)
		case <-pending:
			w.refresh(ctx)
		}
	}
}

// refresh re-renders the watched file and notifies subscribers.
func (w *Watcher) refresh(ctx context.Context) {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		utils.Warn("failed to read %s: %v", w.Path, err)
		return
	}
	html := w.Renderer.RenderOrError(w.Type, string(data), render.Options{Title: filepath.Base(w.Path)})
	if w.Blobs != nil {
		name := strings.TrimSuffix(filepath.Base(w.Path), filepath.Ext(w.Path)) + ".html"
		if url, err := w.Blobs.Put(ctx, []byte(html), constants.ContentTypeHTML, name); err != nil {
			utils.Warn("failed to store rendered preview: %v", err)
		} else {
			utils.Debug("preview written to %s", url)
		}
	}
	if w.Bus != nil {
		if err := w.Bus.Publish(constants.TopicPreviewReload, event.ReloadEvent{
			Path: w.Path,
			Type: w.Type.String(),
		}); err != nil {
			utils.Warn("failed to publish reload event: %v", err)
		}
	}
	utils.User("Rendered %s", w.Path)
}
