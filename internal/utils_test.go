package internal

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEpisodeTitle(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{
			name: "new year",
			day:  time.Date(2025, time.January, 1, 7, 0, 0, 0, time.UTC),
			want: "Daily Newsletter Podcast - January 01, 2025",
		},
		{
			name: "double digit day",
			day:  time.Date(2024, time.November, 15, 23, 59, 0, 0, time.UTC),
			want: "Daily Newsletter Podcast - November 15, 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EpisodeTitle(tt.day); got != tt.want {
				t.Errorf("EpisodeTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateRunID(t *testing.T) {
	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if id1 == id2 {
		t.Error("Expected unique run IDs")
	}

	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("GenerateRunID() returned invalid UUID %q: %v", id1, err)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(abc) = %q, want abc", got)
	}
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID() = %q, want 01234567", got)
	}
}
