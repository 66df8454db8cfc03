package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func collectEvents(t *testing.T, src Source, want int, timeout time.Duration) []Event {
	t.Helper()
	var events []Event
	deadline := time.After(timeout)
	for len(events) < want {
		select {
		case event, ok := <-src.Events():
			if !ok {
				return events
			}
			events = append(events, event)
		case <-deadline:
			t.Fatalf("got %d event(s), wanted %d", len(events), want)
		}
	}
	return events
}

func TestPollSource_EmitsCreateForEveryEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"))
	writeFile(t, filepath.Join(dir, "b.jpg"))

	src := NewPollSource(dir, SourceConfig{PollInterval: 20 * time.Millisecond, QueueCapacity: 16})
	require.NoError(t, src.Start(context.Background()))
	defer src.Close()

	events := collectEvents(t, src, 2, 2*time.Second)
	paths := make(map[string]bool)
	for _, event := range events {
		assert.Equal(t, EventCreate, event.Type)
		paths[filepath.Base(event.Path)] = true
	}
	assert.True(t, paths["a.txt"])
	assert.True(t, paths["b.jpg"])
}

func TestPollSource_SeesNewFiles(t *testing.T) {
	dir := t.TempDir()

	src := NewPollSource(dir, SourceConfig{PollInterval: 20 * time.Millisecond, QueueCapacity: 16})
	require.NoError(t, src.Start(context.Background()))
	defer src.Close()

	writeFile(t, filepath.Join(dir, "late.mp3"))

	events := collectEvents(t, src, 1, 2*time.Second)
	assert.Equal(t, "late.mp3", filepath.Base(events[0].Path))
}

func TestPollSource_ReportsScanErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	src := NewPollSource(dir, SourceConfig{PollInterval: 20 * time.Millisecond, QueueCapacity: 16})
	require.NoError(t, src.Start(context.Background()))
	defer src.Close()

	select {
	case err := <-src.Errors():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scan error was not reported")
	}
}

func TestPollSource_CloseIsIdempotent(t *testing.T) {
	src := NewPollSource(t.TempDir(), SourceConfig{PollInterval: 20 * time.Millisecond, QueueCapacity: 16})
	require.NoError(t, src.Start(context.Background()))

	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	// Channels are closed after Close.
	_, ok := <-src.Events()
	assert.False(t, ok)
}
