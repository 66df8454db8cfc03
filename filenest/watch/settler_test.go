package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettler_DispatchesAfterDelay(t *testing.T) {
	s := NewSettler(20*time.Millisecond, 10)
	defer s.Close()

	s.Add(Event{Type: EventCreate, Path: "/watch/a.txt", Timestamp: time.Now()})

	select {
	case event := <-s.Events():
		assert.Equal(t, "/watch/a.txt", event.Path)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("event was not dispatched")
	}
}

func TestSettler_SecondEventResetsTimer(t *testing.T) {
	s := NewSettler(60*time.Millisecond, 10)
	defer s.Close()

	s.Add(Event{Type: EventCreate, Path: "/watch/a.txt"})
	time.Sleep(30 * time.Millisecond)
	s.Add(Event{Type: EventCreate, Path: "/watch/a.txt"})

	// The first timer was reset, so nothing arrives at the original deadline.
	select {
	case <-s.Events():
		t.Fatal("event dispatched before the reset delay elapsed")
	case <-time.After(40 * time.Millisecond):
	}

	select {
	case event := <-s.Events():
		assert.Equal(t, "/watch/a.txt", event.Path)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("event was not dispatched after reset")
	}
}

func TestSettler_PathsAreIndependent(t *testing.T) {
	s := NewSettler(20*time.Millisecond, 10)
	defer s.Close()

	s.Add(Event{Type: EventCreate, Path: "/watch/a.txt"})
	s.Add(Event{Type: EventCreate, Path: "/watch/b.txt"})

	paths := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case event := <-s.Events():
			paths[event.Path] = true
		case <-time.After(500 * time.Millisecond):
			t.Fatal("missing event")
		}
	}
	assert.True(t, paths["/watch/a.txt"])
	assert.True(t, paths["/watch/b.txt"])
}

func TestSettler_CloseDropsPending(t *testing.T) {
	s := NewSettler(50*time.Millisecond, 10)
	s.Add(Event{Type: EventCreate, Path: "/watch/a.txt"})
	s.Close()

	// The channel closes without delivering the pending event.
	event, ok := <-s.Events()
	require.False(t, ok, "unexpected event after close: %+v", event)

	// Adding after close is a no-op, not a panic.
	s.Add(Event{Type: EventCreate, Path: "/watch/b.txt"})
	s.Close()
}
