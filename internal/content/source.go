package content

import (
	"context"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// reloadDebounce coalesces the burst of events editors emit on save.
const reloadDebounce = 250 * time.Millisecond

// Source serves the current portfolio and swaps it when the backing file
// changes. Pages already rendered keep the content they were built from.
type Source struct {
	path    string
	current atomic.Pointer[Portfolio]
}

// NewSource loads path (or the defaults when path is empty).
func NewSource(path string) (*Source, error) {
	p, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Source{path: path}
	s.current.Store(p)
	return s, nil
}

// StaticSource serves p forever.
func StaticSource(p *Portfolio) *Source {
	s := &Source{}
	s.current.Store(p)
	return s
}

// Current returns the portfolio in effect.
func (s *Source) Current() *Portfolio {
	return s.current.Load()
}

// Reload re-reads the backing file. Invalid content leaves the previous
// portfolio in place.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	p, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(p)
	return nil
}

// Watch reloads the portfolio whenever its file changes, until ctx is done.
// It returns immediately when the source has no backing file.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create content watcher")
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", s.path)
	}
	log.Printf("Watching %s for content changes", s.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					log.Printf("Content reload failed, keeping previous content: %v", err)
					return
				}
				log.Printf("Content reloaded from %s", s.path)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Content watcher error: %v", err)
		}
	}
}
