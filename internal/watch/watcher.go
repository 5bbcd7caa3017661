// Package watch observes the photo directories and turns filesystem
// changes into domain events.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"fotogrip/internal/eventbus"
	"fotogrip/internal/loader"
)

// settleDelay gives a newly created file time to be fully written before
// it is loaded.
const settleDelay = 200 * time.Millisecond

// Watcher publishes PhotoFileAdded/PhotoFileRemoved events for image
// files appearing in or disappearing from watched directories.
type Watcher struct {
	bus eventbus.EventBus
	fsw *fsnotify.Watcher
}

// New creates a watcher publishing to the given bus.
func New(bus eventbus.EventBus) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{bus: bus, fsw: fsw}, nil
}

// Watch begins watching the given roots and their subdirectories. It
// blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, roots ...string) error {
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return w.fsw.Close()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		// New subdirectories join the watch set
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				log.Warn("could not watch new directory", "path", event.Name, "err", err)
			}
			return
		}
		path := event.Name
		time.AfterFunc(settleDelay, func() {
			if !loader.IsImage(path) {
				return
			}
			entry, err := loader.LoadEntry(path)
			if err != nil {
				log.Debug("could not load new image", "path", path, "err", err)
				return
			}
			w.bus.Publish(eventbus.PhotoFileAddedEvent{Entry: entry})
		})

	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		w.bus.Publish(eventbus.PhotoFileRemovedEvent{Path: event.Name})
	}
}

// addTree adds path and every subdirectory below it to the watch set.
// It fails when path is not a directory.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
