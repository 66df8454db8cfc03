package organize

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	internal "github.com/Rizirfan/FileNest/filenest"

	"github.com/sourcegraph/conc/pool"
)

// DirectorySnapshot is a read-only view of the organized state of a
// watched directory: the files inside each category folder, the files
// still at the root, and the protected files. It is recomputed on every
// call; nothing is cached.
type DirectorySnapshot struct {
	Root       string                 `json:"root"`
	Categories map[string][]FileEntry `json:"categories"`
	RootFiles  []FileEntry            `json:"root_files"`
	Protected  []FileEntry            `json:"protected"`
	TotalFiles int                    `json:"total_files"`
}

// Snapshot builds a DirectorySnapshot of watchDir. Category folders are
// listed concurrently with a bounded worker pool; missing folders are
// simply absent from the result.
func (o *Organizer) Snapshot(ctx context.Context, watchDir string) (*DirectorySnapshot, error) {
	abs, err := filepath.Abs(watchDir)
	if err != nil {
		return nil, err
	}

	rootEntries, err := o.scanner.ListTopLevel(abs)
	if err != nil {
		return nil, err
	}

	snap := &DirectorySnapshot{
		Root:       abs,
		Categories: make(map[string][]FileEntry),
	}

	folders := append(o.registry.Names(), CategoryOthers)

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(4).WithContext(ctx)

	for _, name := range folders {
		name := name
		p.Go(func(ctx context.Context) error {
			files, err := o.listFiles(filepath.Join(abs, name), name)
			if err != nil || len(files) == 0 {
				// Absent or unreadable category folders are omitted.
				return nil
			}
			mu.Lock()
			snap.Categories[name] = files
			mu.Unlock()
			return nil
		})
	}

	p.Go(func(ctx context.Context) error {
		files, err := o.listFiles(filepath.Join(abs, internal.ProtectedDirName), internal.ProtectedDirName)
		if err != nil {
			return nil
		}
		mu.Lock()
		snap.Protected = files
		mu.Unlock()
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, path := range rootEntries {
		info, err := os.Lstat(path)
		if err != nil || info.IsDir() {
			continue
		}
		snap.RootFiles = append(snap.RootFiles, FileEntry{
			Path:     path,
			Name:     info.Name(),
			Size:     info.Size(),
			Category: o.registry.CategoryFor(info.Name()),
		})
	}

	snap.TotalFiles = len(snap.RootFiles) + len(snap.Protected)
	for _, files := range snap.Categories {
		snap.TotalFiles += len(files)
	}

	return snap, nil
}

// listFiles returns the plain files directly under dir, tagged with the
// given category name.
func (o *Organizer) listFiles(dir, category string) ([]FileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileEntry{
			Path:     filepath.Join(dir, entry.Name()),
			Name:     entry.Name(),
			Size:     info.Size(),
			Category: category,
		})
	}
	return files, nil
}
