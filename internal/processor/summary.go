package processor

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// StageTiming records how long one stage took
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Summary describes one pipeline run
type Summary struct {
	RunID     string
	ChannelID string
	PostURL   string
	Title     string

	TextChars   int
	ScriptChars int
	AudioPath   string
	AudioBytes  int64
	MessageID   int64

	AudioDeleted bool
	AudioKept    bool
	CleanupError string
	FailedStage  string

	Timings  []StageTiming
	Started  time.Time
	Finished time.Time
}

func (s *Summary) track(stage string, start, end time.Time) {
	s.Timings = append(s.Timings, StageTiming{Stage: stage, Duration: end.Sub(start)})
}

// Duration is the wall time of the run
func (s *Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

// Render prints the summary as a table
func (s *Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle("Newscast run " + s.RunID)

	t.AppendRow(table.Row{"Post", orDash(s.PostURL)})
	t.AppendRow(table.Row{"Episode", orDash(s.Title)})
	t.AppendRow(table.Row{"Channel", orDash(s.ChannelID)})
	t.AppendRow(table.Row{"Text", fmt.Sprintf("%d chars", s.TextChars)})
	t.AppendRow(table.Row{"Script", fmt.Sprintf("%d chars", s.ScriptChars)})
	t.AppendRow(table.Row{"Audio", s.audioStatus()})
	if s.MessageID != 0 {
		t.AppendRow(table.Row{"Message ID", s.MessageID})
	}
	if s.FailedStage != "" {
		t.AppendRow(table.Row{"Failed stage", s.FailedStage})
	}

	t.AppendSeparator()
	for _, timing := range s.Timings {
		t.AppendRow(table.Row{timing.Stage, timing.Duration.Round(time.Millisecond)})
	}
	t.AppendFooter(table.Row{"Total", s.Duration().Round(time.Millisecond)})
	t.Render()
}

func (s *Summary) audioStatus() string {
	switch {
	case s.AudioPath == "":
		return "-"
	case s.AudioDeleted:
		return fmt.Sprintf("%s (%d bytes, deleted)", s.AudioPath, s.AudioBytes)
	case s.CleanupError != "":
		return fmt.Sprintf("%s (%d bytes, delete failed: %s)", s.AudioPath, s.AudioBytes, s.CleanupError)
	default:
		return fmt.Sprintf("%s (%d bytes, kept)", s.AudioPath, s.AudioBytes)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
