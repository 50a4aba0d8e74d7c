package models

import (
	"fmt"
	"time"
)

// Artifact represents an image file in the gallery
type Artifact struct {
	FileName  string    // Base name of the file within the gallery
	Path      string    // Absolute path on disk
	Format    string    // File extension without the leading dot
	Size      int64     // Size in bytes
	CreatedAt time.Time // File modification time
}

// FilterValue returns the value used for filtering in lists
func (a Artifact) FilterValue() string {
	return a.FileName
}

// Title satisfies the list.Item interface
func (a Artifact) Title() string {
	return a.FileName
}

// Description satisfies the list.Item interface
func (a Artifact) Description() string {
	return fmt.Sprintf("%s • %s • %s", a.Format, formatSize(a.Size), a.CreatedAt.Format("2006-01-02 15:04"))
}

// formatSize renders a byte count in a human-readable unit
func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
