package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of filesystem events into one change
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to the listed directory
type Watcher struct {
	fsw      *fsnotify.Watcher
	mu       sync.Mutex
	dir      string
	changes  chan string
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher starts a watcher. A nil logger uses slog.Default().
func NewWatcher(ctx context.Context, logger *slog.Logger) (*Watcher, error) {
	return newWatcher(ctx, DefaultDebounce, logger)
}

func newWatcher(ctx context.Context, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create directory watcher: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		fsw:      fsw,
		changes:  make(chan string, 1),
		cancel:   cancel,
		debounce: debounce,
		logger:   logger,
	}
	w.wg.Add(1)
	go w.loop(loopCtx)
	return w, nil
}

// Changes delivers the watched directory each time its contents change
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Watch switches the watch to dir
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsw.Remove(w.dir); err != nil {
			w.logger.Debug("failed to remove watch", "dir", w.dir, "error", err)
		}
	}
	w.dir = ""
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Dir returns the watched directory
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Close stops the watcher and waits for its goroutine
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("directory event", "name", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("directory watcher error", "error", err)

		case <-fire:
			fire = nil
			dir := w.Dir()
			select {
			case w.changes <- dir:
			default:
				// A change is already pending
			}
		}
	}
}
