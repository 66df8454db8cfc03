package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Rizirfan/FileNest/filenest/organize"
)

// PollSource implements Source by re-listing the directory root on a
// fixed interval. It emits a creation event for every entry present at
// each tick; deduplication against the processed set is the controller's
// job, which makes polling observationally equivalent to notification
// mode, differing only in latency bounded by the interval.
type PollSource struct {
	dir       string
	interval  time.Duration
	scanner   *organize.Scanner
	eventChan chan Event
	errorChan chan error
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
	closeOnce sync.Once
}

// NewPollSource creates a polling source for dir.
func NewPollSource(dir string, cfg SourceConfig) *PollSource {
	return &PollSource{
		dir:       dir,
		interval:  cfg.PollInterval,
		scanner:   organize.NewScanner(),
		eventChan: make(chan Event, cfg.QueueCapacity),
		errorChan: make(chan error, 10),
	}
}

// Start begins the re-scan loop. The ticker sleep is the sole suspension
// point of this mode.
func (s *PollSource) Start(ctx context.Context) error {
	s.startOnce.Do(func() {
		s.ctx, s.cancel = context.WithCancel(ctx)

		s.wg.Add(1)
		go s.pollLoop()

		slog.Info("Poll source started", "dir", s.dir, "interval", s.interval)
	})
	return nil
}

// Events returns the event channel
func (s *PollSource) Events() <-chan Event {
	return s.eventChan
}

// Errors returns the error channel
func (s *PollSource) Errors() <-chan error {
	return s.errorChan
}

// Close stops the poll loop.
func (s *PollSource) Close() error {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
		close(s.eventChan)
		close(s.errorChan)

		slog.Info("Poll source closed", "dir", s.dir)
	})
	return nil
}

func (s *PollSource) pollLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return

		case <-ticker.C:
			s.scanOnce()
		}
	}
}

func (s *PollSource) scanOnce() {
	paths, err := s.scanner.ListTopLevel(s.dir)
	if err != nil {
		select {
		case s.errorChan <- err:
		case <-s.ctx.Done():
		default:
			slog.Warn("Error channel full, dropping error", "error", err)
		}
		return
	}

	now := time.Now()
	for _, path := range paths {
		select {
		case s.eventChan <- Event{Type: EventCreate, Path: path, Timestamp: now}:
		case <-s.ctx.Done():
			return
		default:
			slog.Warn("Event channel full, dropping event", "path", path)
		}
	}
}
