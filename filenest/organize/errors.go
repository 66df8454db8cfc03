package organize

import (
	"errors"
	"fmt"
)

// Common error types used across the organize and watch packages.
var (
	ErrDirectoryNotFound = errors.New("directory does not exist")
	ErrNotADirectory     = errors.New("path is not a directory")
	ErrPermissionDenied  = errors.New("permission denied")
)

// MoveError reports a failed relocation of a single file. During a batch
// pass it is counted and the pass continues with the next file.
type MoveError struct {
	Source string
	Target string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("failed to move %s to %s: %v", e.Source, e.Target, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
