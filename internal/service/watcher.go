package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// PairWatcher reports changes to the image files of a pair.
type PairWatcher struct {
	log *slog.Logger
}

// NewPairWatcher creates a PairWatcher.
func NewPairWatcher(log *slog.Logger) *PairWatcher {
	return &PairWatcher{log: log}
}

// Watch begins watching both images of p and returns a channel that receives
// the path of an image whenever it is written or created. The parent
// directories are watched rather than the files so that a file saved by
// writing a new one in its place is noticed too. Moving a file away is not
// reported; the file that replaces it is. Notifications that arrive while the
// previous one is unread are coalesced. The channel is closed when ctx is
// done.
func (w *PairWatcher) Watch(ctx context.Context, p Pair) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	targets := make(map[string]bool, 2)
	for _, path := range []string{p.Before, p.After} {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	out := make(chan string, 1)

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only emit on write or create of a watched file
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil || !targets[abs] {
					continue
				}

				select {
				case out <- abs:
				default:
					// A change is already pending.
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
				w.log.Warn("file watcher error", "error", err)
			}
		}
	}()

	return out, nil
}
