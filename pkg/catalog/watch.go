package catalog

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce batches the event bursts editors and copies produce into
// a single re-verification
const watchDebounce = 200 * time.Millisecond

// Watch re-runs Verify whenever the collection directory changes on disk.
// One result is delivered on the returned channel per settled batch of
// changes, nil when the collection verifies clean. The channel closes when
// ctx is done.
//
// dir is the real file system path of the collection, which the catalog's
// store must be rooted at for results to be meaningful.
func (c *Catalog) Watch(ctx context.Context, dir string) (<-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	dataDir := filepath.Join(dir, "data")
	if _, serr := os.Stat(dataDir); serr == nil {
		if err = watcher.Add(dataDir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	results := make(chan error, 1)
	go func() {
		defer watcher.Close()
		defer close(results)

		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.l.Debug("collection changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
				pending = time.After(watchDebounce)
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case results <- werr:
				case <-ctx.Done():
					return
				}
			case <-pending:
				pending = nil
				select {
				case results <- c.Verify(ctx):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return results, nil
}
