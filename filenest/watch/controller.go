package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	internal "github.com/Rizirfan/FileNest/filenest"
	"github.com/Rizirfan/FileNest/filenest/organize"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// State is the lifecycle state of a watch session.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Session describes one watch session. It lives for the lifetime of the
// watch command and is discarded on teardown.
type Session struct {
	ID        uuid.UUID
	Dir       string
	Mode      Mode
	Interval  time.Duration
	StartedAt time.Time
}

// Config tunes a watch controller.
type Config struct {
	SettleDelay   time.Duration
	PollInterval  time.Duration
	QueueCapacity int
	// LockDir holds per-directory lock files so two sessions cannot
	// watch the same directory. The lock lives outside the watched
	// directory so it is never organized itself.
	LockDir string
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	src := DefaultSourceConfig()
	return Config{
		SettleDelay:   src.SettleDelay,
		PollInterval:  src.PollInterval,
		QueueCapacity: src.QueueCapacity,
		LockDir:       internal.DefaultLockDir,
	}
}

// Controller drives the organizer from an event source. It exclusively
// owns the processed set: a single run goroutine mutates it, so no locks
// guard it. One file is organized at a time; two organize calls never run
// concurrently against the same directory within a session.
type Controller struct {
	organizer *organize.Organizer
	scanner   *organize.Scanner
	cfg       Config

	mu       sync.Mutex
	state    State
	session  *Session
	baseline *organize.Result

	processed map[string]struct{}
	source    Source
	lock      *flock.Flock
	cancel    context.CancelFunc
	ctx       context.Context
	done      chan struct{}
}

// NewController creates a controller over the given organizer.
func NewController(organizer *organize.Organizer, cfg Config) *Controller {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultSourceConfig().QueueCapacity
	}
	return &Controller{
		organizer: organizer,
		scanner:   organize.NewScanner(),
		cfg:       cfg,
		state:     StateIdle,
	}
}

// Start initializes and runs a watch session on dir. Initialization runs
// one full organize pass so the session begins from an organized
// baseline, then seeds the processed set with every entry still at the
// root; only entries that legitimately remain or newly arrive are
// tracked. Returns once the session is running.
func (c *Controller) Start(ctx context.Context, dir string, mode Mode) (*Session, error) {
	c.mu.Lock()
	if c.state != StateIdle && c.state != StateStopped {
		c.mu.Unlock()
		return nil, fmt.Errorf("watch session already active (state %s)", c.state)
	}
	c.state = StateInitializing
	c.mu.Unlock()

	abs, err := filepath.Abs(dir)
	if err != nil {
		c.setState(StateIdle)
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	lock, err := c.acquireLock(abs)
	if err != nil {
		c.setState(StateIdle)
		return nil, err
	}

	// Baseline pass: a watch session starts from a clean, organized state.
	baseline, err := c.organizer.OrganizeDirectory(ctx, abs, false)
	if err != nil {
		_ = lock.Unlock()
		c.setState(StateIdle)
		return nil, err
	}

	// Seed with what is present now, after the baseline pass, so its
	// output folders are not re-seen as new.
	entries, err := c.scanner.ListTopLevel(abs)
	if err != nil {
		_ = lock.Unlock()
		c.setState(StateIdle)
		return nil, err
	}
	processed := make(map[string]struct{}, len(entries))
	for _, path := range entries {
		processed[path] = struct{}{}
	}

	srcCfg := SourceConfig{
		SettleDelay:   c.cfg.SettleDelay,
		PollInterval:  c.cfg.PollInterval,
		QueueCapacity: c.cfg.QueueCapacity,
	}

	var source Source
	switch mode {
	case ModePoll:
		source = NewPollSource(abs, srcCfg)
	case ModeNotify:
		source, err = NewNotifySource(abs, srcCfg)
		if err != nil {
			_ = lock.Unlock()
			c.setState(StateIdle)
			return nil, err
		}
	default:
		_ = lock.Unlock()
		c.setState(StateIdle)
		return nil, fmt.Errorf("unknown watch mode: %s", mode)
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := source.Start(runCtx); err != nil {
		cancel()
		_ = source.Close()
		_ = lock.Unlock()
		c.setState(StateIdle)
		return nil, err
	}

	session := &Session{
		ID:        uuid.New(),
		Dir:       abs,
		Mode:      mode,
		Interval:  c.cfg.PollInterval,
		StartedAt: time.Now(),
	}

	c.mu.Lock()
	c.session = session
	c.baseline = baseline
	c.processed = processed
	c.source = source
	c.lock = lock
	c.ctx = runCtx
	c.cancel = cancel
	c.done = make(chan struct{})
	c.state = StateRunning
	c.mu.Unlock()

	go c.run()

	slog.Info("Watch session started",
		"session", session.ID,
		"dir", abs,
		"mode", mode,
		"preExisting", len(processed))

	return session, nil
}

// Stop requests a cooperative shutdown: no new events are accepted, the
// in-flight organize call completes, then session state is discarded.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return nil
	}
	c.state = StateStopping
	cancel := c.cancel
	c.mu.Unlock()

	cancel()
	c.Wait()
	return nil
}

// Wait blocks until the session has fully stopped.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the active session, or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Baseline returns the result of the initializing organize pass.
func (c *Controller) Baseline() *organize.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseline
}

// run is the single control goroutine. It alone reads and mutates the
// processed set.
func (c *Controller) run() {
	defer c.teardown()

	events := c.source.Events()
	errors := c.source.Errors()

	for {
		select {
		case <-c.ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			c.handle(event)

		case err, ok := <-errors:
			if !ok {
				errors = nil
				continue
			}
			slog.Error("Watch source error", "error", err)
		}
	}
}

// handle routes one event through the organizer with at-most-once
// semantics per path per session.
func (c *Controller) handle(event Event) {
	if event.Type != EventCreate {
		return
	}

	path := event.Path
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		path = abs
	}

	if _, seen := c.processed[path]; seen {
		return
	}

	slog.Info("New file detected", "path", filepath.Base(path))

	// The organize call itself is never interrupted mid-move; shutdown
	// waits for it instead.
	if _, err := c.organizer.Organize(context.Background(), path, c.session.Dir, false); err != nil {
		slog.Error("Failed to organize new file", "path", path, "error", err)
	}

	// Marked processed regardless of outcome: a failed move is not
	// retried on every tick.
	c.processed[path] = struct{}{}
}

func (c *Controller) teardown() {
	c.mu.Lock()
	c.state = StateStopping
	source := c.source
	lock := c.lock
	done := c.done
	session := c.session
	c.mu.Unlock()

	if source != nil {
		_ = source.Close()
	}
	if lock != nil {
		if err := lock.Unlock(); err != nil {
			slog.Warn("Failed to release watch lock", "error", err)
		}
	}

	c.mu.Lock()
	c.state = StateStopped
	c.session = nil
	c.processed = nil
	c.source = nil
	c.lock = nil
	c.mu.Unlock()

	if session != nil {
		slog.Info("Watch session stopped", "session", session.ID)
	}
	close(done)
}

// acquireLock takes an exclusive per-directory lock so a second FileNest
// session cannot watch the same directory concurrently.
func (c *Controller) acquireLock(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(c.cfg.LockDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(dir))
	lockPath := filepath.Join(c.cfg.LockDir, hex.EncodeToString(sum[:8])+".lock")

	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire watch lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("directory is already being watched: %s", dir)
	}
	return lock, nil
}
