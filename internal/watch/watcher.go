// Package watch re-runs a conversion whenever Pywal rewrites its color file.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"walremap/internal/errors"
)

// Watcher observes a single source file. The parent directory is watched
// rather than the file itself so that atomic replacements, which swap the
// inode, keep triggering: a file renamed onto the source shows up as a
// Create event for the source path.
//
// Pywal writes several files per run, so events for other names in the
// directory are dropped before they reach the debounce timer.
type Watcher struct {
	source   string
	debounce time.Duration
	log      logrus.FieldLogger
}

// New creates a Watcher for source. Bursts of events closer together than
// debounce collapse into one trigger.
func New(source string, debounce time.Duration, log logrus.FieldLogger) *Watcher {
	return &Watcher{
		source:   filepath.Clean(source),
		debounce: debounce,
		log:      log,
	}
}

// Run calls onChange after each settled change to the source file until ctx
// is cancelled. onChange is always called from the goroutine running Run, so
// conversions never overlap. ready, if non-nil, is closed once the watch is
// established.
func (w *Watcher) Run(ctx context.Context, ready chan<- struct{}, onChange func()) error {
	dir := filepath.Dir(w.source)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return errors.NewWatchError(dir, "source directory does not exist", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewWatchError(dir, "failed to create watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return errors.NewWatchError(dir, "failed to watch directory", err)
	}

	w.log.WithField("source", w.source).Info("Watching for color scheme changes")
	if ready != nil {
		close(ready)
	}

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
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.WithField("op", event.Op.String()).Debug("color scheme changed")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("file watcher error")
		}
	}
}

// relevant reports whether event changed the content at the source path.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.source {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
