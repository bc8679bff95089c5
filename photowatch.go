package garland

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// PhotoWatcher watches a drop folder and reports new image files so they can
// be hung as ornaments while the greeting runs. It complements the file
// picker: drop a photo in the folder and it appears on the tree.
type PhotoWatcher struct {
	w    *fsnotify.Watcher
	log  *zap.Logger
	done chan struct{}
}

// WatchPhotos starts watching dir. onAdd is called from the watcher
// goroutine with the path of every newly created image file; the caller is
// responsible for marshaling onto its own tick if needed. log may be nil.
func WatchPhotos(dir string, log *zap.Logger, onAdd func(path string)) (*PhotoWatcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create photo watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	pw := &PhotoWatcher{w: w, log: log, done: make(chan struct{})}
	go pw.loop(onAdd)
	log.Info("watching photo folder", zap.String("dir", dir))
	return pw, nil
}

func (pw *PhotoWatcher) loop(onAdd func(path string)) {
	defer close(pw.done)
	for {
		select {
		case ev, ok := <-pw.w.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) && isImagePath(ev.Name) {
				pw.log.Info("photo dropped", zap.String("path", ev.Name))
				onAdd(ev.Name)
			}
		case err, ok := <-pw.w.Errors:
			if !ok {
				return
			}
			pw.log.Warn("photo watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher.
func (pw *PhotoWatcher) Close() error {
	err := pw.w.Close()
	<-pw.done
	return err
}

// isImagePath reports whether the file extension is a decodable image type.
func isImagePath(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
