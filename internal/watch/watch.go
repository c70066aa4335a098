// Package watch drives incremental syncs from filesystem events. It maps
// file events back to components through the layout resolver, accumulates
// changed component ids over a debounce window so editor save bursts
// produce one pass, and hands the set to a callback.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/project"
)

// DefaultDebounce is the quiet period after the last relevant event
// before a sync fires.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the accumulated changed component ids once the
// debounce window closes.
type Handler func(ctx context.Context, changed []string)

// Watcher observes a managed project tree.
type Watcher struct {
	root       string
	resolver   *layout.Resolver
	components []*model.Component
	debounce   time.Duration
	handler    Handler
	logger     *zap.Logger
}

// New creates a watcher over the project rooted at p.Root. A zero
// debounce uses DefaultDebounce.
func New(p *project.Project, debounce time.Duration, handler Handler, logger *zap.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		root:       p.Root,
		resolver:   p.Layout,
		components: p.Components,
		debounce:   debounce,
		handler:    handler,
		logger:     logger,
	}
}

// Run watches until the context is cancelled. Directories created while
// watching are added on the fly; events on paths that map to no
// component's artifact are ignored.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: creating watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addDirs(fw, w.root); err != nil {
		return err
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, event, pending, timer)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for id := range pending {
				changed = append(changed, id)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.logger.Info("components changed", zap.Strings("components", changed))
			w.handler(ctx, changed)
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event, pending map[string]bool, timer *time.Timer) {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	// Newly created directories need their own watch.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addDirs(fw, event.Name)
			return
		}
	}

	comp, _, ok := w.resolver.Match(w.components, rel)
	if !ok {
		return
	}

	if !pending[comp.ID] {
		w.logger.Debug("artifact changed",
			zap.String("path", rel),
			zap.String("component", comp.Name),
		)
	}
	pending[comp.ID] = true

	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(w.debounce)
}

// addDirs registers path and every directory below it, skipping the
// directories excluded from project scans.
func (w *Watcher) addDirs(fw *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The subtree may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if project.SkippedDir(d.Name()) && p != path {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.logger.Warn("cannot watch directory", zap.String("dir", p), zap.Error(err))
		}
		return nil
	})
}
