package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UniqueName returns filename unchanged if no entry with that name exists
// under destDir; otherwise it probes stem(1)ext, stem(2)ext, ... and
// returns the first unused candidate.
//
// Existence is re-checked for every candidate rather than assumed
// monotonic: external processes may write into destDir concurrently. The
// counter is intentionally unbounded.
func UniqueName(destDir, filename string) string {
	if !exists(filepath.Join(destDir, filename)) {
		return filename
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s(%d)%s", stem, counter, ext)
		if !exists(filepath.Join(destDir, candidate)) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
