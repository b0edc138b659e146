package internal

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// DatabaseWatcher signals when the session database is modified by
// another process, so a live view can re-query. In-process mutations
// are already covered by the store's own subscriptions; this catches
// external writers only.
type DatabaseWatcher struct {
	fsw    *fsnotify.Watcher
	dbPath string

	changes chan struct{}
	done    chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// WatchDatabase starts watching the database file for out-of-process
// writes. The watcher observes the containing directory because
// SQLite journals and WAL files appear and disappear beside the
// database itself.
func WatchDatabase(dbPath string) (*DatabaseWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &FileStoreError{Path: dbPath, Op: "watch", Err: err}
	}
	if err := fsw.Add(filepath.Dir(dbPath)); err != nil {
		fsw.Close()
		return nil, &FileStoreError{Path: dbPath, Op: "watch", Err: err}
	}

	w := &DatabaseWatcher{
		fsw:     fsw,
		dbPath:  dbPath,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers one signal per burst of database modifications
func (w *DatabaseWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher
func (w *DatabaseWatcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *DatabaseWatcher) run() {
	base := filepath.Base(w.dbPath)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleSignal()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			LogWarn("database watch error: %v", err)
		}
	}
}

// scheduleSignal coalesces a burst of filesystem events into a single
// change signal after a quiet period.
func (w *DatabaseWatcher) scheduleSignal() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, func() {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	})
}
