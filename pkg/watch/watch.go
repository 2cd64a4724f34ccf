// Package watch re-indexes a document file whenever it changes on disk.
//
// The watcher observes the file's directory rather than the file itself,
// so editors that save by writing a temporary file and renaming it over
// the original are picked up. Bursts of events are coalesced and each
// reload publishes a complete, freshly parsed Document; nothing is
// patched incrementally.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
)

// DefaultDebounce is the quiet period after the last event before a reload.
const DefaultDebounce = 100 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Debounce is the quiet period before reloading. Zero uses DefaultDebounce.
	Debounce time.Duration

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives an index event per reload. May be nil.
	Trace log.Logger
}

// Update is the result of one reload. Exactly one of Document and Err is set.
type Update struct {
	// Generation counts reloads, starting at 1 for the initial load.
	Generation int

	Document *gltf.Document
	Err      error

	// Took is the time spent reading and indexing.
	Took time.Duration
}

// Watcher publishes a fresh Document for every change of one file.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	updates  chan Update
	logger   *slog.Logger
	trace    *log.Session
	gen      int
}

// New starts watching path. Call Run to receive updates.
func New(path string, cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: cfg.Debounce,
		fs:       fw,
		updates:  make(chan Update, 1),
		logger:   cfg.Logger,
		trace:    log.NewSession(cfg.Trace, abs),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	return w, nil
}

// Updates returns the channel updates are published on. Only the latest
// unread update is kept. The channel is closed when Run returns.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Run loads the file once and then reloads it after every change until
// ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer w.fs.Close()

	w.reload()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.debugLog("document changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Warn("watch error", "path", w.path, "error", err)
			}
		}
	}
}

func (w *Watcher) reload() {
	w.gen++
	start := time.Now()
	doc, err := Load(w.path)
	u := Update{Generation: w.gen, Document: doc, Err: err, Took: time.Since(start)}

	if err != nil {
		w.trace.Error(log.DirectionIn, log.LayerIndex, err, "reload")
		w.debugLog("reload failed", "generation", u.Generation, "error", err)
	} else {
		w.trace.Index(log.IndexEvent{Entries: doc.Source.Map.Len(), Size: len(doc.Source.Text)})
		w.debugLog("reloaded", "generation", u.Generation, "entries", doc.Source.Map.Len(), "took", u.Took)
	}
	w.publish(u)
}

// publish replaces any unread update with u.
func (w *Watcher) publish(u Update) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- u
}

// Load reads and indexes the document at path.
func Load(path string) (*gltf.Document, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := gltf.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// debugLog logs a debug message if logging is enabled.
func (w *Watcher) debugLog(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(msg, append([]any{"path", w.path}, args...)...)
	}
}
