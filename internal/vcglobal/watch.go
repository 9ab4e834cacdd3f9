package vcglobal

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/veritas-lang/veritas/internal/vctypes"
)

// Watch starts an fsnotify watch on dir, invalidating the memoization entry
// for a compilation unit whenever its backing file changes on disk (write,
// rename, or remove). The returned Closer stops the watch and releases the
// underlying OS handle; callers not using watch-mode invalidation never
// call this (mirrors internal/runtime/vfs's FSNotifyWatcher, scoped down to
// the one event kind vcglobal's cache cares about).
func (g *Generator) Watch(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(dir); err != nil {
		w.Close()

		return nil, err
	}

	watcher := &Watcher{w: w, done: make(chan struct{})}

	go watcher.loop(g)

	return watcher, nil
}

// Watcher is the handle returned by Generator.Watch; Close stops the
// background goroutine and the OS watch.
type Watcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

func (watcher *Watcher) loop(g *Generator) {
	defer close(watcher.done)

	for event := range watcher.w.Events {
		if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
			continue
		}

		g.Invalidate(nameFromPath(event.Name))
	}
}

// Close stops the watch. It blocks until the background goroutine exits.
func (watcher *Watcher) Close() error {
	err := watcher.w.Close()
	<-watcher.done

	return err
}

// nameFromPath derives the qualified name a changed file corresponds to
// from its base filename, stripping any extension. Compilation units
// loaded from disk are expected to be named after their top-level
// declaration, matching the teacher's convention of one unit per file.
func nameFromPath(path string) vctypes.QualifiedName {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return vctypes.QualifiedName{Name: base}
}
