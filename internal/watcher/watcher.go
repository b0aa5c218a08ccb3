package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/votxt/internal/logger"
	"github.com/nguyentantai21042004/votxt/internal/transcriber"
)

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settle        time.Duration
	wg            sync.WaitGroup

	mu   sync.Mutex
	seen map[string]bool
}

// Start handles files already in the inbox, then every new one, until ctx
// is done. Each path is handled at most once.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(transcriber.SupportedFormats, ", "))

	if err := w.scanExisting(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan inbox: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if err := w.dispatch(ctx, event.Name, w.settle); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := w.dispatch(ctx, filepath.Join(w.inboxDir, e.Name()), 0); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the handler for path in its own goroutine once a semaphore
// slot is free. It only returns an error when ctx ends while waiting.
func (w *implWatcher) dispatch(ctx context.Context, path string, delay time.Duration) error {
	if !transcriber.IsSupported(path) {
		w.logger.Debug(ctx, "Ignoring unsupported file: %s", path)
		return nil
	}
	if !w.markSeen(path) {
		w.logger.Debug(ctx, "Already handled: %s", path)
		return nil
	}

	w.logger.Info(ctx, "New audio detected: %s", path)
	if delay > 0 {
		time.Sleep(delay)
	}

	select {
	case w.semaphore <- struct{}{}:
		w.wg.Add(1)
		go func(filePath string) {
			defer w.wg.Done()
			defer func() { <-w.semaphore }()

			if err := w.handler(ctx, filePath); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
			}
		}(path)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *implWatcher) markSeen(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen[path] {
		return false
	}
	w.seen[path] = true
	return true
}
