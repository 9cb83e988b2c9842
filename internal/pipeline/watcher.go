package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PinoutChange reports a modified or removed pinout file.
type PinoutChange struct {
	File    string
	Removed bool
}

// Watcher monitors a pinout CSV file for edits so the front-end can
// re-normalize a job when the user saves corrections in an external
// editor.
type Watcher struct {
	File    string
	Changes <-chan PinoutChange

	changes chan PinoutChange
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given pinout file.
func NewWatcher(file string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan PinoutChange, 16)
	return &Watcher{
		File:    file,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. The containing directory is watched rather
// than the file itself: editors that write-rename would otherwise drop
// the watch on the first save.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: editors often emit several events per save.
	const debounce = 100 * time.Millisecond
	var pending *PinoutChange
	var last time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if pending != nil {
					w.changes <- *pending
				}
				return
			}
			if !w.isPinoutFile(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				pending = &PinoutChange{File: event.Name, Removed: true}
				last = time.Now()
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				pending = &PinoutChange{File: event.Name}
				last = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			if pending != nil && time.Since(last) >= debounce {
				w.changes <- *pending
				pending = nil
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next save still fires.
		}
	}
}

func (w *Watcher) isPinoutFile(name string) bool {
	if filepath.Clean(name) == filepath.Clean(w.File) {
		return true
	}
	// Write-rename editors touch temp names next to the target.
	return strings.HasPrefix(filepath.Base(name), filepath.Base(w.File))
}
