package watch

import (
	"context"
	"time"
)

// Mode selects the watch strategy.
type Mode string

const (
	// ModeNotify uses native filesystem change notifications.
	ModeNotify Mode = "notify"
	// ModePoll re-lists the directory on a fixed interval. It is the
	// universally available fallback and must be observationally
	// equivalent to ModeNotify, differing only in latency.
	ModePoll Mode = "poll"
)

// EventType represents the type of file system event
type EventType int

const (
	// EventCreate represents file/directory creation
	EventCreate EventType = iota
	// EventWrite represents file modification
	EventWrite
	// EventRemove represents file/directory removal
	EventRemove
	// EventRename represents file/directory rename
	EventRename
)

// Event represents a file system event
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// Source is the polymorphic event source both watch strategies implement.
// The controller depends only on this capability, never on which
// implementation is active.
type Source interface {
	// Start begins producing events for the watched directory.
	Start(ctx context.Context) error

	// Events returns a channel of file system events
	Events() <-chan Event

	// Errors returns a channel of errors encountered during watching
	Errors() <-chan error

	// Close stops watching and cleans up resources
	Close() error
}

// SourceConfig holds tuning for event sources.
type SourceConfig struct {
	// SettleDelay is the wait after a creation notification before the
	// event is dispatched, so a producer can finish writing.
	SettleDelay time.Duration

	// PollInterval is the re-scan interval for the polling source.
	PollInterval time.Duration

	// QueueCapacity is the capacity of the event channel.
	QueueCapacity int
}

// DefaultSourceConfig returns the default source tuning.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		SettleDelay:   500 * time.Millisecond,
		PollInterval:  5 * time.Second,
		QueueCapacity: 256,
	}
}
