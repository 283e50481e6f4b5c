package stub

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"studyguide/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// FixtureWatcher reloads a fixture file into a Server whenever it changes.
// Editors often write a file several times per save, so events are
// debounced before reloading.
type FixtureWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	server      *Server
	path        string
	debounceDur time.Duration
	pending     time.Time
	reloads     int
	errors      int

	// OnReload, if set, is called after every reload attempt.
	OnReload func(err error)
}

// NewFixtureWatcher watches path on behalf of s. The directory is watched
// rather than the file so atomic rename-on-save is picked up.
func NewFixtureWatcher(path string, s *Server) (*FixtureWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fixture path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	return &FixtureWatcher{
		watcher:     w,
		server:      s,
		path:        abs,
		debounceDur: 200 * time.Millisecond,
	}, nil
}

// Reloads returns how many successful reloads happened.
func (fw *FixtureWatcher) Reloads() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.reloads
}

// Run processes events until ctx is done, then closes the watcher.
func (fw *FixtureWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	ticker := time.NewTicker(fw.debounceDur / 2)
	defer ticker.Stop()

	logging.Stub("watching fixture %s", fw.path)
	for {
		select {
		case <-ctx.Done():
			logging.Stub("fixture watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			logging.StubError("fixture watcher error: %v", err)
			fw.mu.Lock()
			fw.errors++
			fw.mu.Unlock()

		case <-ticker.C:
			fw.reloadIfDue()
		}
	}
}

func (fw *FixtureWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	fw.mu.Lock()
	fw.pending = time.Now()
	fw.mu.Unlock()
}

func (fw *FixtureWatcher) reloadIfDue() {
	fw.mu.Lock()
	if fw.pending.IsZero() || time.Since(fw.pending) < fw.debounceDur {
		fw.mu.Unlock()
		return
	}
	fw.pending = time.Time{}
	fw.mu.Unlock()

	err := fw.reload()
	fw.mu.Lock()
	if err != nil {
		fw.errors++
	} else {
		fw.reloads++
	}
	fw.mu.Unlock()
	if fw.OnReload != nil {
		fw.OnReload(err)
	}
}

func (fw *FixtureWatcher) reload() error {
	data, err := ReadFixture(fw.path)
	if err != nil {
		logging.StubWarn("fixture reload skipped: %v", err)
		return err
	}
	if err := fw.server.SetFixture(data); err != nil {
		return err
	}
	logging.Stub("fixture reloaded (%d bytes)", len(data))
	return nil
}
