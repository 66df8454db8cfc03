package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// NotifySource implements Source using fsnotify change notifications,
// scoped to a single directory, non-recursive. Only creation events are
// surfaced; modification events are ignored by design (a file already
// routed is not re-routed because its content changed further). Each
// creation passes through a per-path settler before dispatch.
type NotifySource struct {
	dir       string
	watcher   *fsnotify.Watcher
	settler   *Settler
	eventChan chan Event
	errorChan chan error
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
}

// NewNotifySource creates an fsnotify-backed source for dir.
func NewNotifySource(dir string, cfg SourceConfig) (*NotifySource, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &NotifySource{
		dir:       dir,
		watcher:   fsWatcher,
		settler:   NewSettler(cfg.SettleDelay, cfg.QueueCapacity),
		eventChan: make(chan Event, cfg.QueueCapacity),
		errorChan: make(chan error, 10),
	}, nil
}

// Start begins watching the directory and producing settled events.
func (s *NotifySource) Start(ctx context.Context) error {
	var startErr error
	s.startOnce.Do(func() {
		s.ctx, s.cancel = context.WithCancel(ctx)

		if err := s.watcher.Add(s.dir); err != nil {
			startErr = fmt.Errorf("failed to watch %s: %w", s.dir, err)
			return
		}

		s.wg.Add(2)
		go s.watchLoop()
		go s.forwardSettled()

		slog.Info("Notify source started", "dir", s.dir)
	})
	return startErr
}

// Events returns the event channel
func (s *NotifySource) Events() <-chan Event {
	return s.eventChan
}

// Errors returns the error channel
func (s *NotifySource) Errors() <-chan error {
	return s.errorChan
}

// Close stops watching and cleans up resources. Pending settle timers
// are dropped.
func (s *NotifySource) Close() error {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}

		if err := s.watcher.Close(); err != nil {
			slog.Warn("Error closing fsnotify watcher", "error", err)
		}
		s.settler.Close()

		s.wg.Wait()
		close(s.eventChan)
		close(s.errorChan)

		slog.Info("Notify source closed", "dir", s.dir)
	})
	return nil
}

// watchLoop feeds creation notifications into the settler.
func (s *NotifySource) watchLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			s.settler.Add(Event{
				Type:      EventCreate,
				Path:      event.Name,
				Timestamp: time.Now(),
			})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			select {
			case s.errorChan <- err:
			case <-s.ctx.Done():
				return
			default:
				slog.Warn("Error channel full, dropping error", "error", err)
			}
		}
	}
}

// forwardSettled moves settled events onto the public channel.
func (s *NotifySource) forwardSettled() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event, ok := <-s.settler.Events():
			if !ok {
				return
			}
			select {
			case s.eventChan <- event:
			case <-s.ctx.Done():
				return
			default:
				slog.Warn("Event channel full, dropping event", "path", event.Path)
			}
		}
	}
}
