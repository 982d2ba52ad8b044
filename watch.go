package csspurge

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce collapses bursts of editor writes into one run.
const watchDebounce = 100 * time.Millisecond

// Watch runs Purge once, then again whenever a file in a directory holding
// an input changes, until ctx is cancelled. onRun receives every outcome;
// optimizer errors do not stop the watch.
func Watch(ctx context.Context, config Config, onRun func(*Result, error)) error {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(config)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	log.Debug("watching", zap.Strings("dirs", dirs))

	onRun(Purge(config))

	debounce := &debouncer{delay: watchDebounce}
	defer debounce.stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, config.Output) {
				continue
			}
			log.Debug("change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			fire = debounce.trigger()

		case <-fire:
			fire = nil
			onRun(Purge(config))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

// debouncer coalesces bursts of events into one run after delay.
type debouncer struct {
	delay time.Duration
	timer *time.Timer
}

// trigger (re)starts the delay and returns the channel that fires once it
// elapses.
func (d *debouncer) trigger() <-chan time.Time {
	if d.timer == nil {
		d.timer = time.NewTimer(d.delay)
	} else {
		d.timer.Reset(d.delay)
	}
	return d.timer.C
}

// stop cancels a pending run. It reports whether one was pending.
func (d *debouncer) stop() bool {
	if d.timer == nil {
		return false
	}
	return d.timer.Stop()
}

// watchDirs returns the directories of every matched input and HTML file.
func watchDirs(config Config) ([]string, error) {
	files, _, err := expandGlobPatternsWithStats(append(append([]string{}, config.CSS...), config.HTML...), config.Output)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// relevant reports whether an event touches a stylesheet or document other
// than the run's own output.
func relevant(event fsnotify.Event, output string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if output != "" && samePath(event.Name, output) {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".css", ".html", ".htm":
		return true
	}
	return false
}

