package organize

import "time"

// MoveRecord describes one file relocation, performed or intended.
type MoveRecord struct {
	SourcePath string    `json:"source_path"`
	TargetPath string    `json:"target_path"`
	Category   string    `json:"category"`
	DryRun     bool      `json:"dry_run"`
	Timestamp  time.Time `json:"timestamp"`
}

// SkipReason explains why the organizer left a path alone.
type SkipReason int

const (
	SkipNone SkipReason = iota
	// SkipDirectory: the path refers to a directory.
	SkipDirectory
	// SkipSelf: the base name matches the running executable.
	SkipSelf
	// SkipProtected: the base name matches the reserved protected folder.
	SkipProtected
)

// Outcome is the result of organizing a single path.
type Outcome struct {
	Moved  bool
	Skip   SkipReason
	Record *MoveRecord
}

// Result accumulates the counts of one full-directory pass. It is reset
// per invocation; a fresh Result is returned from every pass.
type Result struct {
	Organized int          `json:"organized"`
	Errors    int          `json:"errors"`
	Skipped   int          `json:"skipped"`
	Moves     []MoveRecord `json:"moves"`
	DryRun    bool         `json:"dry_run"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// FileEntry is an ephemeral view of one file, recomputed on every scan.
type FileEntry struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Category string `json:"category"`
}
