// Package watch re-dispatches checks whenever watched files actually change.
// It debounces filesystem event bursts (editors typically emit several events
// per save) and keeps a bounded cache of content digests so a save that does
// not change file contents does not trigger a redundant run.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-faster/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"pycheck/internal/config"
	"pycheck/internal/dispatch"
	"pycheck/pkg/domain"
	"pycheck/pkg/logger"
)

// Options configure watch mode.
type Options struct {
	// Debounce is how long to wait after the last filesystem event before
	// re-dispatching.
	Debounce time.Duration
	// DigestCacheSize bounds the content-digest cache.
	DigestCacheSize int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Debounce:        cfg.Watch.Debounce,
		DigestCacheSize: cfg.Watch.DigestCacheSize,
	}
}

// Runner dispatches one run over the caller-supplied args. It is implemented
// by dispatch.Dispatcher.
type Runner interface {
	Run(ctx context.Context, args []string) (domain.Run, error)
}

// Watcher owns the watch loop: filesystem events in, dispatch runs out.
type Watcher struct {
	options Options
	runner  Runner
	// args are the original caller-supplied arguments, re-dispatched verbatim
	// on every run.
	args []string
	// targets is the resolved target list, used only to decide which paths
	// to watch.
	targets []string
	// digests maps path to the hex digest of its last seen content.
	digests *lru.Cache[string, string]
	// onRun receives every completed run, e.g. to print a report.
	onRun func(domain.Run)
}

// New constructs a Watcher. defaultTarget must match the dispatcher's so the
// watched paths line up with what gets dispatched.
func New(runner Runner, args []string, defaultTarget string, options Options, onRun func(domain.Run)) (*Watcher, error) {
	if options.DigestCacheSize <= 0 {
		options.DigestCacheSize = 1024
	}
	digests, err := lru.New[string, string](options.DigestCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating digest cache")
	}

	return &Watcher{
		options: options,
		runner:  runner,
		args:    append([]string(nil), args...),
		targets: dispatch.ResolveTargets(args, defaultTarget),
		digests: digests,
		onRun:   onRun,
	}, nil
}

// watchPaths derives the directories to watch from the resolved targets:
// the directory itself for directory targets, the parent directory for file
// targets. Arguments that name nothing on disk (tool flags) are skipped.
// When no target exists on disk, the working directory is watched so the
// loop still reacts to the target being created.
func (w *Watcher) watchPaths() []string {
	seen := map[string]bool{}
	var paths []string
	add := func(p string) {
		if p == "" {
			p = "."
		}
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, target := range w.targets {
		info, err := os.Stat(target)
		if err != nil {
			continue
		}
		if info.IsDir() {
			add(target)
		} else {
			add(filepath.Dir(target))
		}
	}

	if len(paths) == 0 {
		add(".")
	}

	return paths
}

// relevant reports whether an event path should be considered at all:
// Python sources, plus anything explicitly named as a target.
func (w *Watcher) relevant(path string) bool {
	if strings.HasSuffix(path, ".py") || strings.HasSuffix(path, ".pyi") {
		return true
	}
	for _, target := range w.targets {
		if filepath.Clean(target) == filepath.Clean(path) {
			return true
		}
	}

	return false
}

// changed reports whether the content behind path differs from the cached
// digest, updating the cache. Deleting a previously seen file counts as a
// change.
func (w *Watcher) changed(path string) bool {
	prev, seen := w.digests.Get(path)

	data, err := os.ReadFile(path)
	if err != nil {
		w.digests.Remove(path)

		return seen
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	w.digests.Add(path, digest)

	return !seen || prev != digest
}

// prime fills the digest cache from the current target contents so the first
// filesystem event is compared against the state that was just checked.
func (w *Watcher) prime() {
	for _, target := range w.targets {
		if info, err := os.Stat(target); err == nil && !info.IsDir() {
			w.changed(target)
		}
	}
}

// Watch runs an initial dispatch and then re-dispatches after every relevant
// content change until the context is canceled. Run failures do not stop the
// loop; that is the point of watch mode.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating filesystem watcher")
	}
	defer func() {
		_ = fsw.Close()
	}()

	for _, path := range w.watchPaths() {
		if err := fsw.Add(path); err != nil {
			return errors.Wrapf(err, "watching %q", path)
		}
		logger.Debug(ctx, "watching path", zap.String("path", path))
	}

	w.dispatch(ctx)
	w.prime()

	// pending collects event paths between debounce ticks
	pending := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.options.Debounce)
			} else {
				timer.Reset(w.options.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			rerun := false
			for path := range pending {
				if w.changed(path) {
					logger.Debug(ctx, "content changed", zap.String("path", path))
					rerun = true
				}
			}
			pending = map[string]bool{}
			if rerun {
				w.dispatch(ctx)
			}

		case werr, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "filesystem watcher error", zap.Error(werr))
		}
	}
}

// dispatch performs one run and hands the result to the onRun callback.
func (w *Watcher) dispatch(ctx context.Context) {
	run, err := w.runner.Run(ctx, w.args)
	if err != nil && ctx.Err() == nil {
		logger.Error(ctx, "dispatch failed", zap.Error(err))
	}
	if w.onRun != nil {
		w.onRun(run)
	}
}
