package main

import (
	"fmt"

	"github.com/Rizirfan/FileNest/filenest/organize"
)

func totalSize(files []organize.FileEntry) int64 {
	var sum int64
	for _, f := range files {
		sum += f.Size
	}
	return sum
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
