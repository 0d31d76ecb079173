package store

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"draftkeep/pkg/logger"
)

// Watcher reports draft keys rewritten by someone else sharing the same
// file-store directory (another editor instance, a sync tool). It exists
// to warn, never to lock: last writer still wins.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the store directory and invokes onChange with the
// draft key for every created or rewritten draft file. The callback runs on
// the watcher goroutine; keep it short.
func (f *FileStore) Watch(onChange func(key string)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(f.dir); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{fs: fs, done: make(chan struct{})}
	go w.loop(onChange)
	return w, nil
}

func (w *Watcher) loop(onChange func(key string)) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			// Temp files from atomic writes settle via rename; skip them.
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			onChange(strings.TrimSuffix(name, ".json"))
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Sugar.Warnf("Draft watcher error: %v", err)
		}
	}
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
