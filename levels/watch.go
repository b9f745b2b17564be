package levels

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// quiet is how long a level file must go without events before its change
// is reported. Editors often create a file and fill it in separate writes.
const quiet = 100 * time.Millisecond

// Change names a level file that was created, written, renamed or removed.
type Change struct {
	Name      string
	Namespace Namespace
	Removed   bool
}

// Watcher follows level directories so a level select screen or an open
// session can pick up edits made outside the game.
type Watcher struct {
	watcher *fsnotify.Watcher
	dirs    map[string]Namespace
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching the directories of ns, or every namespace when ns
// is empty. Directories are created if missing.
func (s *Store) Watch(ns ...Namespace) (*Watcher, error) {
	if len(ns) == 0 {
		ns = Namespaces
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]Namespace, len(ns))
	for _, n := range ns {
		dir := filepath.Clean(s.Dir(n))
		if err := mkdirAll(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		dirs[dir] = n
	}

	watcher := &Watcher{
		watcher: w,
		dirs:    dirs,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes its channels. Safe to call more than
// once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	timer := time.NewTimer(quiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := w.classify(event)
			if !ok {
				continue
			}
			pending[event.Name] = change
			timer.Reset(quiet)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			for _, path := range paths {
				change := pending[path]
				// A file removed and written again inside one quiet period is
				// reported by what is on disk now.
				_, err := os.Stat(path)
				change.Removed = err != nil
				select {
				case w.Events <- change:
				case <-w.closeCh:
					return
				}
			}
			clear(pending)
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

func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	ns, ok := w.dirs[filepath.Dir(event.Name)]
	if !ok {
		return Change{}, false
	}
	base := filepath.Base(event.Name)
	if filepath.Ext(base) != ns.Ext() {
		return Change{}, false
	}
	return Change{
		Name:      strings.TrimSuffix(base, ns.Ext()),
		Namespace: ns,
		Removed:   event.Op&(fsnotify.Remove|fsnotify.Rename) != 0,
	}, true
}
