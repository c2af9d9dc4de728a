package scene

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports scene and script files that changed on disk. A file is
// reported once it has been quiet for watchDebounce, so a burst of writes
// yields one event after the last of them.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the watch
// goroutine has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	// pending holds, per path, when it is quiet long enough to report.
	pending := make(map[string]time.Time)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	schedule := func() {
		var next time.Time
		for _, at := range pending {
			if next.IsZero() || at.Before(next) {
				next = at
			}
		}
		if !next.IsZero() {
			timer.Reset(time.Until(next))
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsSceneFile(event.Name) && !IsScriptFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now().Add(watchDebounce)
			schedule()
		case <-timer.C:
			now := time.Now()
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				if pending[path].After(now) {
					continue
				}
				delete(pending, path)
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
			}
			schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
