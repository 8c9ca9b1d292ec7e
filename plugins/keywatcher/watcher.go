// Package keywatcher monitors the CLI config file for changes and pushes
// secret key rotations into a running analytics client. The key holder is
// updated in place; in-flight requests may still use the previous key.
package keywatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/forgemetrics/analytics-go/internal/cliconfig"
	"github.com/forgemetrics/analytics-go/pkg/log"
)

// KeyHolder is the subset of the analytics client the watcher drives.
type KeyHolder interface {
	SecretKey() string
	SetSecretKey(key string)
}

// Config holds configuration options for the key watcher.
type Config struct {
	// Path is the TOML config file to watch for secret_key changes.
	Path string

	// DebounceDelay is the delay to wait after a file change before
	// re-reading. Default: 100 milliseconds.
	DebounceDelay time.Duration
}

// Watcher reloads the secret key when the config file changes on disk.
type Watcher struct {
	path          string
	debounceDelay time.Duration
	holder        KeyHolder
	logger        log.Logger

	mu       sync.Mutex
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a key watcher for the given config file and key holder.
func New(cfg Config, holder KeyHolder, logger log.Logger) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Watcher{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		holder:        holder,
		logger:        logger,
	}
}

// Start begins watching in the background. A watcher with an empty path is
// disabled and Start is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	if w.path == "" {
		w.logger.Warn("key watcher disabled: no config path")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.watchLoop(watchCtx)

	w.logger.Info("key watcher started", log.String("path", w.path))
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Error("key watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Error("key watcher: failed to watch directory", log.Err(err))
		return
	}

	// Pick up the key as it is on disk right now.
	w.applyKey()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceApply()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("key watcher: watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceApply() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.debounceDelay, w.applyKey)
}

// applyKey re-reads the config file and rotates the key when it changed.
func (w *Watcher) applyKey() {
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		w.logger.Error("key watcher: failed to read config", log.Err(err))
		return
	}
	if fc.SecretKey == "" || fc.SecretKey == w.holder.SecretKey() {
		return
	}
	w.holder.SetSecretKey(fc.SecretKey)
	w.logger.Info("secret key rotated from config file")
}
