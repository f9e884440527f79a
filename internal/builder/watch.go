package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long Watch waits after the last change before rebuilding.
const debounce = 100 * time.Millisecond

// BuildFunc receives the outcome of every build Watch runs.
type BuildFunc func(res *Result, err error)

// Watch builds once, then rebuilds whenever the theme or base file changes,
// until ctx is cancelled. Build errors are reported to onBuild and do not
// stop watching.
func (b *Builder) Watch(ctx context.Context, req Request, onBuild BuildFunc) error {
	if err := req.Validate(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files on save, so watch the parent directories
	// and filter by name.
	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range []string{req.Theme, req.Base} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	onBuild(b.Build(ctx, req))

	// Timers created stopped never deliver a stale tick.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			b.logger.Debug("change detected", "file", filepath.Base(event.Name), "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			onBuild(b.Build(ctx, req))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("watcher error", "error", err)
		}
	}
}
