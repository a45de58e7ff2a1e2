// Package monitor watches org files and directories for changes and
// keeps the document store in sync, debouncing bursts of filesystem
// events into single re-parses.
package monitor

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dr-yst/org-x/internal/parser"
	"github.com/dr-yst/org-x/internal/repository"
	"github.com/dr-yst/org-x/internal/source"
)

// DefaultDebounce is the window during which repeated events for the
// same path collapse into one re-parse.
const DefaultDebounce = 300 * time.Millisecond

// PathType distinguishes single-file registrations from directory trees.
type PathType string

const (
	PathTypeFile      PathType = "file"
	PathTypeDirectory PathType = "directory"
)

// MonitoredPath is one registered watch target. Only ParseEnabled paths
// are registered with the watcher and feed the document store; disabled
// ones stay on the path list but are ignored until enabled.
type MonitoredPath struct {
	Path         string   `json:"path"`
	Type         PathType `json:"type"`
	ParseEnabled bool     `json:"parse_enabled"`
}

// ChangeKind classifies a store mutation driven by the monitor.
type ChangeKind string

const (
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change reports one document the monitor added, re-parsed, or evicted.
type Change struct {
	Kind       ChangeKind
	DocumentID string
	Path       string
}

// State is the monitor lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateWatching State = "watching"
)

// Monitor owns an fsnotify watcher and a set of registered paths. All
// parsing failures are logged and skipped; a broken file never stops the
// watch loop.
type Monitor struct {
	store     *repository.Store
	parseOpts []parser.Option
	debounce  time.Duration
	logger    *slog.Logger

	changes chan Change

	mu      sync.Mutex
	state   State
	paths   []MonitoredPath
	timers  map[string]*time.Timer
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates an idle monitor feeding the given store.
func New(store *repository.Store, opts ...Option) *Monitor {
	m := &Monitor{
		store:    store,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
		changes:  make(chan Change, 64),
		state:    StateIdle,
		timers:   make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Changes returns the stream of store mutations. The channel is buffered;
// when no one drains it, events are dropped rather than blocking the
// watch loop.
func (m *Monitor) Changes() <-chan Change { return m.changes }

// Store returns the document store the monitor feeds.
func (m *Monitor) Store() *repository.Store { return m.store }

// State returns the current lifecycle state.
func (m *Monitor) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Paths returns a copy of the registered watch targets.
func (m *Monitor) Paths() []MonitoredPath {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MonitoredPath, len(m.paths))
	copy(out, m.paths)
	return out
}

// AddPath registers a watch target. When the monitor is already watching,
// the target joins the live watcher immediately.
func (m *Monitor) AddPath(p MonitoredPath) error {
	abs, err := filepath.Abs(p.Path)
	if err != nil {
		return fmt.Errorf("monitor: resolve %s: %w", p.Path, err)
	}
	p.Path = abs

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.paths {
		if existing.Path == p.Path {
			return nil
		}
	}
	m.paths = append(m.paths, p)

	if p.ParseEnabled && m.state == StateWatching && m.watcher != nil {
		if err := watchTarget(m.watcher, p); err != nil {
			return err
		}
	}
	return nil
}

// Start transitions the monitor to watching: it creates the fsnotify
// watcher, registers every parse-enabled path, runs an initial scan, and
// spawns the event loop. Starting an already-watching monitor tears the
// old watcher down first; restart is never additive. A path that cannot
// be watched is logged and skipped, it does not block the others.
func (m *Monitor) Start(ctx context.Context) error {
	m.Stop()

	m.mu.Lock()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("monitor: create watcher: %w", err)
	}
	for _, p := range m.paths {
		if !p.ParseEnabled {
			continue
		}
		if err := watchTarget(w, p); err != nil {
			m.logger.Warn("monitor: watch failed", slog.String("path", p.Path), slog.String("error", err.Error()))
		}
	}
	m.watcher = w
	m.done = make(chan struct{})
	m.state = StateWatching
	done := m.done
	m.mu.Unlock()

	m.Scan(ctx)

	go m.loop(ctx, w, done)

	m.logger.Info("monitor: started", slog.Int("paths", len(m.Paths())))
	return nil
}

// Stop halts watching and cancels all pending debounce timers. Stop is
// idempotent; stopping an idle monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateWatching {
		return
	}
	close(m.done)
	m.watcher.Close()
	m.watcher = nil
	for path, t := range m.timers {
		t.Stop()
		delete(m.timers, path)
	}
	m.state = StateIdle
	m.logger.Info("monitor: stopped")
}

// Scan reconciles the store with disk: every relevant file under a
// parse-enabled path is parsed unless its content digest already matches
// the stored document's etag, and store entries whose files are gone are
// pruned.
func (m *Monitor) Scan(ctx context.Context) {
	keep := make(map[string]struct{})

	for _, p := range m.Paths() {
		if !p.ParseEnabled {
			continue
		}
		metas, err := source.List(p.Path)
		if err != nil {
			m.logger.Warn("monitor: scan failed", slog.String("path", p.Path), slog.String("error", err.Error()))
			continue
		}
		for _, meta := range metas {
			if ctx.Err() != nil {
				return
			}
			keep[meta.Path] = struct{}{}
			if m.store.Etag(parser.DocumentID(meta.Path)) == meta.Checksum {
				continue
			}
			m.parseFile(meta.Path)
		}
	}

	for _, id := range m.store.PruneUncovered(keep) {
		m.emit(Change{Kind: ChangeRemoved, DocumentID: id})
		m.logger.Debug("monitor: pruned", slog.String("id", id))
	}
}

func (m *Monitor) loop(ctx context.Context, w *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			m.Stop()
			return
		case <-done:
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			m.handleEvent(ev, w)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			m.logger.Error("monitor: watch error", slog.String("error", err.Error()))
		}
	}
}

func (m *Monitor) handleEvent(ev fsnotify.Event, w *fsnotify.Watcher) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	// Directories created inside a watched tree join the watch list.
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !m.covered(ev.Name) {
				return
			}
			if err := watchDirRecursive(w, ev.Name); err != nil {
				m.logger.Warn("monitor: add dir failed", slog.String("path", ev.Name), slog.String("error", err.Error()))
			}
			return
		}
	}

	if !source.Relevant(ev.Name) {
		return
	}
	// A file registration watches its parent directory, so sibling files
	// show up here; only events for registered targets count.
	if !m.covered(ev.Name) {
		return
	}

	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// fsnotify reports renames on the old path; the new path arrives
		// as a separate Create. Evict immediately, no debounce.
		m.cancelTimer(ev.Name)
		id := parser.DocumentID(ev.Name)
		m.store.Remove(id)
		m.emit(Change{Kind: ChangeRemoved, DocumentID: id, Path: ev.Name})
		m.logger.Debug("monitor: evicted", slog.String("path", ev.Name))

	default:
		m.scheduleParse(ev.Name)
	}
}

// scheduleParse arms (or re-arms) the per-path debounce timer. A burst
// of N write events within the window yields exactly one re-parse.
func (m *Monitor) scheduleParse(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateWatching {
		return
	}
	if t, ok := m.timers[path]; ok {
		t.Reset(m.debounce)
		return
	}
	m.timers[path] = time.AfterFunc(m.debounce, func() {
		m.mu.Lock()
		delete(m.timers, path)
		stopped := m.state != StateWatching
		m.mu.Unlock()
		if stopped {
			return
		}
		m.parseFile(path)
	})
}

// covered reports whether path is a registered parse-enabled file or
// lies under a registered parse-enabled directory.
func (m *Monitor) covered(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.paths {
		if !p.ParseEnabled {
			continue
		}
		switch p.Type {
		case PathTypeFile:
			if path == p.Path {
				return true
			}
		default:
			if path == p.Path || strings.HasPrefix(path, p.Path+string(filepath.Separator)) {
				return true
			}
		}
	}
	return false
}

func (m *Monitor) cancelTimer(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.timers[path]; ok {
		t.Stop()
		delete(m.timers, path)
	}
}

// parseFile re-parses one file and upserts the result. Files that vanish
// or fail to parse are logged and skipped. No change event fires when the
// re-parsed document's etag is unchanged.
func (m *Monitor) parseFile(path string) {
	doc, err := parser.ParseFile(path, m.parseOpts...)
	if err != nil {
		m.logger.Warn("monitor: parse failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	changed := m.store.Etag(doc.ID) != doc.Etag
	m.store.Upsert(doc)
	if !changed {
		return
	}
	m.emit(Change{Kind: ChangeUpdated, DocumentID: doc.ID, Path: path})
	m.logger.Debug("monitor: parsed", slog.String("path", path), slog.String("id", doc.ID))
}

func (m *Monitor) emit(c Change) {
	select {
	case m.changes <- c:
	default:
		m.logger.Warn("monitor: change dropped", slog.String("id", c.DocumentID))
	}
}

// watchTarget registers one monitored path with the watcher: directories
// recursively, files via their parent directory so editors that replace
// the file on save are still observed.
func watchTarget(w *fsnotify.Watcher, p MonitoredPath) error {
	if p.Type == PathTypeDirectory {
		return watchDirRecursive(w, p.Path)
	}
	if err := w.Add(filepath.Dir(p.Path)); err != nil {
		return fmt.Errorf("monitor: watch %s: %w", p.Path, err)
	}
	return nil
}

func watchDirRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return fmt.Errorf("monitor: watch %s: %w", path, err)
			}
		}
		return nil
	})
}
