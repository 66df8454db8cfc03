package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rizirfan/FileNest/filenest/config"
	"github.com/Rizirfan/FileNest/filenest/organize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()

	table := make(map[string][]string)
	for _, cat := range config.DefaultCategories() {
		table[cat.Name] = cat.Extensions
	}
	org := organize.NewOrganizer(organize.NewRegistry(table))

	cfg := DefaultConfig()
	cfg.PollInterval = 20 * time.Millisecond
	cfg.SettleDelay = 10 * time.Millisecond
	cfg.LockDir = t.TempDir()

	return NewController(org, cfg)
}

func TestController_BaselinePassThenPollRouting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "old.pdf"))

	c := newTestController(t)
	session, err := c.Start(context.Background(), dir, ModePoll)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, c.Stop())
	}()

	require.NotNil(t, session)
	assert.Equal(t, ModePoll, session.Mode)
	assert.Equal(t, StateRunning, c.State())

	// The initializing pass already organized what was there.
	baseline := c.Baseline()
	require.NotNil(t, baseline)
	assert.Equal(t, 1, baseline.Organized)
	assert.FileExists(t, filepath.Join(dir, "Documents", "old.pdf"))

	// A file arriving later is routed within a few poll intervals.
	writeFile(t, filepath.Join(dir, "new.mp3"))
	target := filepath.Join(dir, "Audio", "new.mp3")
	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestController_ProcessedOnlyOnce(t *testing.T) {
	dir := t.TempDir()

	c := newTestController(t)
	_, err := c.Start(context.Background(), dir, ModePoll)
	require.NoError(t, err)
	defer c.Stop()

	writeFile(t, filepath.Join(dir, "track.mp3"))
	target := filepath.Join(dir, "Audio", "track.mp3")
	require.Eventually(t, func() bool {
		_, err := os.Stat(target)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	// Put an identically named file back at the root: its path is already
	// in the processed set, so it stays put across further ticks.
	writeFile(t, filepath.Join(dir, "track.mp3"))
	time.Sleep(100 * time.Millisecond)
	assert.FileExists(t, filepath.Join(dir, "track.mp3"))
	assert.NoFileExists(t, filepath.Join(dir, "Audio", "track(1).mp3"))
}

func TestController_StopReachesStopped(t *testing.T) {
	dir := t.TempDir()

	c := newTestController(t)
	_, err := c.Start(context.Background(), dir, ModePoll)
	require.NoError(t, err)

	require.NoError(t, c.Stop())
	c.Wait()

	assert.Equal(t, StateStopped, c.State())
	assert.Nil(t, c.Session())

	// Stopping again is a no-op.
	require.NoError(t, c.Stop())
}

func TestController_SecondSessionOnSameDirIsRejected(t *testing.T) {
	dir := t.TempDir()
	lockDir := t.TempDir()

	first := newTestController(t)
	first.cfg.LockDir = lockDir
	_, err := first.Start(context.Background(), dir, ModePoll)
	require.NoError(t, err)
	defer first.Stop()

	second := newTestController(t)
	second.cfg.LockDir = lockDir
	_, err = second.Start(context.Background(), dir, ModePoll)
	assert.Error(t, err)
	assert.Equal(t, StateIdle, second.State())
}

func TestController_StartFailsOnMissingDir(t *testing.T) {
	c := newTestController(t)
	_, err := c.Start(context.Background(), filepath.Join(t.TempDir(), "missing"), ModePoll)
	require.Error(t, err)
	assert.ErrorIs(t, err, organize.ErrDirectoryNotFound)
	assert.Equal(t, StateIdle, c.State())
}

func TestController_RestartAfterStop(t *testing.T) {
	dir := t.TempDir()

	c := newTestController(t)
	_, err := c.Start(context.Background(), dir, ModePoll)
	require.NoError(t, err)
	require.NoError(t, c.Stop())

	session, err := c.Start(context.Background(), dir, ModePoll)
	require.NoError(t, err)
	assert.NotNil(t, session)
	require.NoError(t, c.Stop())
}
