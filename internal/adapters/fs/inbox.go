// Package fs contains filesystem adapters: a directory inbox that feeds
// paths into the ingest loop and a snapshot file publisher.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/mailbox"
	"github.com/bft-labs/curvemark/internal/ports"
)

// DefaultDebounce is how long a file must be quiet before it is read.
const DefaultDebounce = 100 * time.Millisecond

// Inbox implements ports.PathSource over a directory. Every *.json file
// created or written there is decoded as a path once writes settle.
// Only the most recently touched file is kept pending.
type Inbox struct {
	dir      string
	debounce time.Duration
	logger   ports.Logger

	watcher *fsnotify.Watcher
	box     *mailbox.Latest[string]
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	timer   *time.Timer
	pending string
}

// NewInbox starts watching dir.
func NewInbox(dir string, debounce time.Duration, logger ports.Logger) (*Inbox, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox: %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("inbox: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("inbox: watch %s: %w", dir, err)
	}

	in := &Inbox{
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		watcher:  watcher,
		box:      mailbox.New[string](),
		done:     make(chan struct{}),
	}
	in.wg.Add(1)
	go in.watchLoop()
	return in, nil
}

func (in *Inbox) watchLoop() {
	defer in.wg.Done()

	for {
		select {
		case <-in.done:
			return

		case event, ok := <-in.watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			in.schedule(event.Name)

		case err, ok := <-in.watcher.Errors:
			if !ok {
				return
			}
			in.logger.Error("inbox watcher error", ports.Err(err))
		}
	}
}

func (in *Inbox) schedule(name string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.pending = name
	if in.timer != nil {
		in.timer.Stop()
	}
	in.timer = time.AfterFunc(in.debounce, func() {
		in.mu.Lock()
		name := in.pending
		in.mu.Unlock()
		if in.box.Put(name) {
			in.logger.Debug("superseded pending path file", ports.String("file", name))
		}
	})
}

// Next returns the path in the latest settled file. Unreadable or
// undecodable files yield an error wrapping domain.ErrInvalidPath.
func (in *Inbox) Next(ctx context.Context) (domain.Path, error) {
	name, err := in.box.Get(ctx)
	if err != nil {
		if errors.Is(err, mailbox.ErrClosed) {
			return domain.Path{}, domain.ErrSourceClosed
		}
		return domain.Path{}, err
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return domain.Path{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidPath, filepath.Base(name), err)
	}
	path, err := domain.DecodePath(data)
	if err != nil {
		return domain.Path{}, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return path, nil
}

// Dir returns the watched directory.
func (in *Inbox) Dir() string {
	return in.dir
}

// Close stops watching. A file already settled is still delivered by Next.
func (in *Inbox) Close() error {
	select {
	case <-in.done:
		return nil
	default:
	}
	close(in.done)
	err := in.watcher.Close()
	in.wg.Wait()

	in.mu.Lock()
	if in.timer != nil {
		in.timer.Stop()
	}
	in.mu.Unlock()

	in.box.Close()
	return err
}
