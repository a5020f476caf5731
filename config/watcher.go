package config

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/propset/resolver"
)

// DefaultDebounceDelay is how long the watcher waits for more changes before
// reloading.
const DefaultDebounceDelay = 500 * time.Millisecond

// ReloadFunc receives each successfully rebuilt resolver.
type ReloadFunc func(*resolver.Resolver)

// Watcher rebuilds the resolver when a configuration file changes. A reload
// that fails is logged and the previous resolver stays current.
type Watcher struct {
	loader  *Loader
	path    string
	metrics *resolver.Metrics
	logger  *slog.Logger
	onLoad  ReloadFunc
	delay   time.Duration

	watcher *fsnotify.Watcher
	files   map[string]bool

	pendingMu sync.Mutex
	pending   bool

	hashMu sync.Mutex
	hashes map[string]string

	currentMu sync.RWMutex
	current   *resolver.Resolver
}

// NewWatcher creates a watcher over the files loader reads for path.
// current is the resolver in use before the first reload.
func NewWatcher(loader *Loader, path string, current *resolver.Resolver, metrics *resolver.Metrics, onLoad ReloadFunc, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		loader:  loader,
		path:    path,
		metrics: metrics,
		logger:  logger,
		onLoad:  onLoad,
		delay:   DefaultDebounceDelay,
		watcher: fsw,
		files:   make(map[string]bool),
		hashes:  make(map[string]string),
		current: current,
	}

	// Editors replace files on save, so the parent directories are watched.
	dirs := make(map[string]bool)
	for _, p := range loader.Paths(path) {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		w.hashes[abs] = fileHash(abs)
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// SetDebounceDelay changes the debounce delay. It must be called before
// Start.
func (w *Watcher) SetDebounceDelay(d time.Duration) {
	if d > 0 {
		w.delay = d
	}
}

// Current returns the resolver built from the latest valid configuration.
func (w *Watcher) Current() *resolver.Resolver {
	w.currentMu.RLock()
	defer w.currentMu.RUnlock()
	return w.current
}

// Files returns the watched configuration files.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Start processes file events until ctx is done.
func (w *Watcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
	w.logger.Info("Config watcher started", slog.Int("files", len(w.files)), slog.Duration("debounce", w.delay))
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return
	}

	w.pendingMu.Lock()
	w.pending = true
	w.pendingMu.Unlock()

	w.logger.Debug("Config change detected", slog.String("path", abs), slog.String("op", event.Op.String()))
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if !w.pending {
		w.pendingMu.Unlock()
		return
	}
	w.pending = false
	w.pendingMu.Unlock()

	if !w.contentChanged() {
		return
	}
	w.reload()
}

// contentChanged reports whether any watched file differs from the last
// version seen.
func (w *Watcher) contentChanged() bool {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()

	changed := false
	for f := range w.files {
		h := fileHash(f)
		if h != w.hashes[f] {
			w.hashes[f] = h
			changed = true
		}
	}
	return changed
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load(w.path)
	if err != nil {
		w.logger.Error("Config reload failed, keeping previous configuration", slog.String("error", err.Error()))
		return
	}
	r, err := cfg.Build(w.logger, w.metrics)
	if err != nil {
		w.logger.Error("Config rebuild failed, keeping previous configuration", slog.String("error", err.Error()))
		return
	}

	w.currentMu.Lock()
	w.current = r
	w.currentMu.Unlock()

	w.logger.Info("Config reloaded", slog.Int("properties", len(r.AllProperties())))
	if w.onLoad != nil {
		w.onLoad(r)
	}
}

// fileHash returns the content hash of path, or "" when it cannot be read.
func fileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
