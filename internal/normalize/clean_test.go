package normalize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "paragraphs separated by one blank line",
			markup: `<h1>Weekly Notes</h1><p>First paragraph.</p><p>Second paragraph.</p>`,
			want:   "Weekly Notes\n\nFirst paragraph.\n\nSecond paragraph.",
		},
		{
			name:   "links keep their text",
			markup: `<p>Read <a href="https://example.com">the report</a> today.</p>`,
			want:   "Read the report today.",
		},
		{
			name:   "scripts styles images and figures removed",
			markup: `<script>var x = 1;</script><style>p{}</style><p>Kept text</p><figure><img src="a.png"><figcaption>Caption here</figcaption></figure><p>Another <span>hidden</span>line</p>`,
			want:   "Kept text\n\nAnother line",
		},
		{
			name:   "line breaks inside text become spaces",
			markup: "<p>One sentence\nwrapped over\nlines.</p>",
			want:   "One sentence wrapped over lines.",
		},
		{
			name:   "subscribe and email prompts stripped",
			markup: `<p>Real content here</p><div>Subscribe</div><p>Type your email... to join</p><p>Need more info about this offer</p>`,
			want:   "Real content here\n\nNeed",
		},
		{
			name:   "short fragments dropped",
			markup: `<p>ok</p><p>•</p><p>Long enough</p><hr><p>--</p>`,
			want:   "Long enough",
		},
		{
			name:   "non-breaking spaces collapse",
			markup: "<p>Wide&nbsp;&nbsp;&nbsp;gap\tand  tabs</p>",
			want:   "Wide gap and tabs",
		},
		{
			name:   "empty input",
			markup: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.markup); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClean_ParagraphInvariants(t *testing.T) {
	markup := `<div><h2>Top stories</h2><p>Markets rallied on Monday.</p>
<blockquote>Quoted insight from an analyst.</blockquote>
<p>Subscribe</p><p>SubSubscribescribe</p>
<div><p>Nested paragraph text.</p></div><p>x</p></div>`

	got := Clean(markup)
	blocks := strings.Count(markup, "<p>") + strings.Count(markup, "<div>") +
		strings.Count(markup, "<h2>") + strings.Count(markup, "<blockquote>")

	paragraphs := strings.Split(got, "\n\n")
	if len(paragraphs) > blocks {
		t.Errorf("got %d paragraphs from %d block elements", len(paragraphs), blocks)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("output has more than one consecutive blank line: %q", got)
	}
	if strings.Contains(got, "Subscribe") {
		t.Errorf("output still contains Subscribe: %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line == "" {
			continue
		}
		if len([]rune(line)) < 3 {
			t.Errorf("line shorter than 3 characters: %q", line)
		}
	}
	if !strings.Contains(got, "Nested paragraph text.") {
		t.Errorf("nested paragraph lost: %q", got)
	}
}
