package internal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EpisodeTitlePrefix starts every published episode title
const EpisodeTitlePrefix = "Daily Newsletter Podcast"

// EpisodeTitle builds the dated episode title, e.g.
// "Daily Newsletter Podcast - January 01, 2025"
func EpisodeTitle(day time.Time) string {
	return fmt.Sprintf("%s - %s", EpisodeTitlePrefix, day.Format("January 02, 2006"))
}

// GenerateRunID returns a unique identifier for one pipeline run
func GenerateRunID() string {
	return uuid.NewString()
}

// ShortID returns the first 8 characters of an ID for compact log output
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
