package organize

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scanner enumerates the top-level entries of a directory. The filesystem
// is the source of truth: every listing is recomputed, never cached.
type Scanner struct{}

// NewScanner creates a new directory scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ListTopLevel returns the absolute paths of all immediate entries of dir,
// files and directories alike. It does no filtering itself; skip rules
// belong to the Organizer.
func (s *Scanner) ListTopLevel(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, abs)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, abs)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, abs)
		}
		return nil, fmt.Errorf("failed to list %s: %w", abs, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(abs, entry.Name()))
	}
	return paths, nil
}
