// Package archive moves kept episode audio out of the working output path.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Episode moves audioPath into archiveDir as episode-YYYYMMDD-HHMMSS<ext>
// and returns the new path
func Episode(audioPath, archiveDir string, at time.Time) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file does not exist: %s", audioPath)
	}

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(audioPath)
	archivePath := filepath.Join(archiveDir, "episode-"+at.Format("20060102-150405")+ext)

	// Two runs in the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, "episode-"+at.Format("20060102-150405.000000000")+ext)
	}

	if err := os.Rename(audioPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive audio file: %w", err)
	}
	return archivePath, nil
}
