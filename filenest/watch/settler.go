package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Settler delays each event by a fixed settle delay before dispatching
// it, so a producer that is still writing the file can finish first. The
// delay is per path: holding back one path never blocks dispatch of
// events for other paths. A second event for a pending path resets its
// timer.
type Settler struct {
	delay     time.Duration
	eventChan chan Event
	mu        sync.Mutex
	pending   map[string]*time.Timer
	closed    bool
}

// NewSettler creates a settler with the given delay and queue capacity.
func NewSettler(delay time.Duration, queueCapacity int) *Settler {
	return &Settler{
		delay:     delay,
		eventChan: make(chan Event, queueCapacity),
		pending:   make(map[string]*time.Timer),
	}
}

// Add schedules an event for dispatch after the settle delay.
func (s *Settler) Add(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if timer, exists := s.pending[event.Path]; exists {
		timer.Stop()
	}

	s.pending[event.Path] = time.AfterFunc(s.delay, func() {
		s.dispatch(event)
	})
}

// Events returns the settled events channel.
func (s *Settler) Events() <-chan Event {
	return s.eventChan
}

func (s *Settler) dispatch(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	delete(s.pending, event.Path)

	// Non-blocking send: a full queue drops the event rather than
	// wedging the timer goroutine against Close.
	select {
	case s.eventChan <- event:
	default:
		slog.Warn("Settle queue full, dropping event", "path", event.Path)
	}
}

// Close stops the settler and drops any pending events.
func (s *Settler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true

	for _, timer := range s.pending {
		timer.Stop()
	}
	s.pending = make(map[string]*time.Timer)
	s.mu.Unlock()

	close(s.eventChan)
}
