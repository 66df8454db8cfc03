package organize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	internal "github.com/Rizirfan/FileNest/filenest"
)

// Recorder receives every performed move, e.g. for a history journal.
// Recording failures are logged and never fail the move itself.
type Recorder interface {
	RecordMove(ctx context.Context, rec MoveRecord) error
}

// Organizer classifies single files and relocates them into category
// subfolders. It holds no mutable state between calls: every call is a
// function of its filesystem inputs plus the immutable registry.
type Organizer struct {
	registry     *Registry
	scanner      *Scanner
	recorder     Recorder
	selfName     string
	protectedDir string

	// OnMove is invoked for every performed or intended move.
	OnMove func(MoveRecord)
	// OnProgress is invoked after each entry of a full-directory pass.
	OnProgress func(processed, total int)
}

// NewOrganizer creates an organizer over the given registry.
func NewOrganizer(registry *Registry) *Organizer {
	selfName := ""
	if exe, err := os.Executable(); err == nil {
		selfName = filepath.Base(exe)
	}

	return &Organizer{
		registry:     registry,
		scanner:      NewScanner(),
		selfName:     selfName,
		protectedDir: internal.ProtectedDirName,
	}
}

// SetRecorder attaches a move recorder. A nil recorder disables recording.
func (o *Organizer) SetRecorder(r Recorder) {
	o.recorder = r
}

// Registry returns the registry the organizer classifies with.
func (o *Organizer) Registry() *Registry {
	return o.registry
}

// Organize classifies and relocates a single file into its category
// folder under watchDir. Skip rules, in order: directories, the running
// executable's own base name, and the reserved protected folder name.
// Skips produce a zero Outcome with no error; a failed move returns a
// *MoveError.
func (o *Organizer) Organize(ctx context.Context, path, watchDir string, dryRun bool) (Outcome, error) {
	select {
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	default:
	}

	base := filepath.Base(path)

	info, err := os.Lstat(path)
	if err != nil {
		// The path vanished between scan and organize: a local failure,
		// never fatal to a batch.
		return Outcome{}, &MoveError{Source: path, Target: "", Err: err}
	}

	if info.IsDir() {
		return Outcome{Skip: SkipDirectory}, nil
	}
	if o.selfName != "" && base == o.selfName {
		slog.Debug("Skipping own executable", "path", path)
		return Outcome{Skip: SkipSelf}, nil
	}
	if base == o.protectedDir {
		return Outcome{Skip: SkipProtected}, nil
	}

	category := o.registry.CategoryFor(base)
	destDir := filepath.Join(watchDir, category)

	rec, err := o.moveInto(ctx, path, destDir, category, dryRun)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Moved: true, Record: rec}, nil
}

// OrganizeDirectory runs a full organize pass over the top level of
// watchDir. Per-file failures are counted and the pass continues; only a
// missing, unreadable or non-directory watchDir fails the pass itself.
func (o *Organizer) OrganizeDirectory(ctx context.Context, watchDir string, dryRun bool) (*Result, error) {
	result := &Result{DryRun: dryRun, StartTime: time.Now()}

	entries, err := o.scanner.ListTopLevel(watchDir)
	if err != nil {
		return result, err
	}

	abs, err := filepath.Abs(watchDir)
	if err != nil {
		return result, fmt.Errorf("failed to resolve %s: %w", watchDir, err)
	}

	slog.Info("Starting organize pass", "dir", abs, "entries", len(entries), "dryRun", dryRun)

	for i, path := range entries {
		outcome, err := o.Organize(ctx, path, abs, dryRun)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			slog.Error("Failed to organize file", "path", path, "error", err)
			result.Errors++
		case outcome.Moved:
			result.Organized++
			result.Moves = append(result.Moves, *outcome.Record)
		case outcome.Skip == SkipSelf || outcome.Skip == SkipProtected:
			result.Skipped++
		}

		if o.OnProgress != nil {
			o.OnProgress(i+1, len(entries))
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	slog.Info("Organize pass completed",
		"organized", result.Organized,
		"errors", result.Errors,
		"skipped", result.Skipped,
		"duration", result.Duration)

	return result, nil
}

// Protect moves a file into the reserved protected folder under watchDir.
// A missing source is a no-op.
func (o *Organizer) Protect(ctx context.Context, path, watchDir string) (*MoveRecord, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}

	destDir := filepath.Join(watchDir, o.protectedDir)
	return o.moveInto(ctx, path, destDir, o.protectedDir, false)
}

// Unprotect moves a file back to the watchDir root, re-resolving name
// conflicts. A missing source is a no-op.
func (o *Organizer) Unprotect(ctx context.Context, path, watchDir string) (*MoveRecord, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}

	return o.moveInto(ctx, path, watchDir, CategoryRoot, false)
}

// moveInto relocates path into destDir under a conflict-free name. In dry
// run it reports the intended move without touching the filesystem.
func (o *Organizer) moveInto(ctx context.Context, path, destDir, category string, dryRun bool) (*MoveRecord, error) {
	base := filepath.Base(path)
	name := UniqueName(destDir, base)
	target := filepath.Join(destDir, name)

	rec := &MoveRecord{
		SourcePath: path,
		TargetPath: target,
		Category:   category,
		DryRun:     dryRun,
		Timestamp:  time.Now(),
	}

	if dryRun {
		slog.Info("Dry run: would move file", "src", path, "dst", target)
		// Dry-run intents are journaled too, flagged, so a preview
		// leaves an audit trail.
		o.record(ctx, *rec)
		o.emit(*rec)
		return rec, nil
	}

	// Creating an already-existing folder is a no-op, not an error.
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, &MoveError{Source: path, Target: target, Err: err}
	}

	if err := o.moveFile(ctx, path, target); err != nil {
		return nil, &MoveError{Source: path, Target: target, Err: err}
	}

	slog.Info("Moved file", "src", base, "dst", filepath.Join(category, name))

	o.record(ctx, *rec)
	o.emit(*rec)

	return rec, nil
}

func (o *Organizer) record(ctx context.Context, rec MoveRecord) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RecordMove(ctx, rec); err != nil {
		slog.Warn("Failed to record move", "src", rec.SourcePath, "error", err)
	}
}

// moveFile renames src to dst, falling back to copy+delete when the
// destination is on another device.
func (o *Organizer) moveFile(ctx context.Context, src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDeviceError(err) {
		return err
	}

	if err := o.copyFile(ctx, src, dst); err != nil {
		return fmt.Errorf("failed to copy file during move: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("failed to remove source file after copy: %w", err)
	}
	return nil
}

func (o *Organizer) copyFile(ctx context.Context, src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	buffer := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, readErr := srcFile.Read(buffer)
		if n > 0 {
			if _, writeErr := dstFile.Write(buffer[:n]); writeErr != nil {
				return writeErr
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil
			}
			return readErr
		}
	}
}

func (o *Organizer) emit(rec MoveRecord) {
	if o.OnMove != nil {
		o.OnMove(rec)
	}
}

func isCrossDeviceError(err error) bool {
	return strings.Contains(err.Error(), "cross-device link") ||
		strings.Contains(err.Error(), "invalid cross-device link")
}
