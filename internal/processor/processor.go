package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/newscast/internal"
	"codeberg.org/snonux/newscast/internal/archive"
	"codeberg.org/snonux/newscast/internal/audio"
	"codeberg.org/snonux/newscast/internal/cli"
	"codeberg.org/snonux/newscast/internal/fetch"
	"codeberg.org/snonux/newscast/internal/logging"
	"codeberg.org/snonux/newscast/internal/normalize"
	"codeberg.org/snonux/newscast/internal/script"
	"codeberg.org/snonux/newscast/internal/telegram"
)

// ErrNoText is returned when normalization leaves nothing to narrate
var ErrNoText = errors.New("newsletter text is empty after cleanup")

// ErrNoContent is returned when the fetcher reports success without a post
var ErrNoContent = errors.New("fetcher returned no content")

// Fetcher retrieves the latest post
type Fetcher interface {
	Fetch(ctx context.Context) (*fetch.RawContent, error)
}

// Scriptwriter turns clean text into a spoken script
type Scriptwriter interface {
	Write(ctx context.Context, text string) (string, error)
	Name() string
}

// Narrator turns a script into an audio file
type Narrator interface {
	Narrate(ctx context.Context, script string) (*audio.Artifact, error)
}

// Publisher uploads an episode
type Publisher interface {
	SendPodcastEpisode(ctx context.Context, chatID, audioPath, title, postURL string) (*telegram.Response, error)
}

// Stages are the pipeline steps in execution order
type Stages struct {
	Fetcher      Fetcher
	Normalize    func(markup string) string
	Scriptwriter Scriptwriter
	Narrator     Narrator
	Publisher    Publisher
}

// StageError wraps the error of the stage that stopped the run
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Option customizes a Processor
type Option func(*Processor)

// WithClock sets the time source used for the episode title and timings
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithOutput sets where progress lines and the summary are printed
func WithOutput(w io.Writer) Option {
	return func(p *Processor) { p.out = w }
}

// WithKeepAudio keeps the audio file after a successful upload
func WithKeepAudio(keep bool) Option {
	return func(p *Processor) { p.keepAudio = keep }
}

// WithArchiveDir moves the audio into dir after a successful upload
// instead of deleting it
func WithArchiveDir(dir string) Option {
	return func(p *Processor) { p.archiveDir = dir }
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *log.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// Processor runs one newsletter-to-podcast pipeline
type Processor struct {
	stages     Stages
	channelID  string
	now        func() time.Time
	out        io.Writer
	keepAudio  bool
	archiveDir string
	logger     *log.Logger
}

// New creates a processor from explicit stages
func New(stages Stages, channelID string, opts ...Option) (*Processor, error) {
	switch {
	case stages.Fetcher == nil:
		return nil, fmt.Errorf("fetcher stage is required")
	case stages.Scriptwriter == nil:
		return nil, fmt.Errorf("scriptwriter stage is required")
	case stages.Narrator == nil:
		return nil, fmt.Errorf("narrator stage is required")
	case stages.Publisher == nil:
		return nil, fmt.Errorf("publisher stage is required")
	case strings.TrimSpace(channelID) == "":
		return nil, fmt.Errorf("channel ID is required")
	}
	if stages.Normalize == nil {
		stages.Normalize = normalize.Clean
	}

	p := &Processor{
		stages:    stages,
		channelID: channelID,
		now:       time.Now,
		out:       os.Stdout,
		logger:    logging.WithPrefix("processor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewProcessor wires the production stages from a resolved configuration.
// Missing credentials fail here, before any network call.
func NewProcessor(cfg *cli.Config, opts ...Option) (*Processor, error) {
	fetcher, err := fetch.New(cfg.Fetch, logging.WithPrefix("fetch"))
	if err != nil {
		return nil, fmt.Errorf("fetcher: %w", err)
	}

	writer, err := script.New(cfg.Script)
	if err != nil {
		return nil, fmt.Errorf("scriptwriter: %w", err)
	}

	provider, err := audio.NewConfiguredProvider(cfg.Audio)
	if err != nil {
		return nil, fmt.Errorf("narrator: %w", err)
	}

	bot, err := telegram.NewBot(cfg.Telegram)
	if err != nil {
		return nil, fmt.Errorf("publisher: %w", err)
	}

	stages := Stages{
		Fetcher:      fetcher,
		Normalize:    normalize.Clean,
		Scriptwriter: writer,
		Narrator:     audio.NewNarrator(provider, cfg.Audio.OutputFile),
		Publisher:    bot,
	}
	opts = append([]Option{WithKeepAudio(cfg.KeepAudio), WithArchiveDir(cfg.ArchiveDir)}, opts...)
	return New(stages, cfg.ChannelID, opts...)
}

// Run executes the pipeline once. The returned summary describes how far
// the run got and is non-nil even when an error is returned.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     internal.GenerateRunID(),
		ChannelID: p.channelID,
		Started:   p.now(),
	}
	logger := p.logger.With("run", internal.ShortID(summary.RunID))

	fail := func(stage string, err error) (*Summary, error) {
		summary.Finished = p.now()
		summary.FailedStage = stage
		logger.Error("Stage failed", "stage", stage, "error", err)
		return summary, &StageError{Stage: stage, Err: err}
	}

	// 1. Fetch
	fmt.Fprintln(p.out, "Fetching latest newsletter post...")
	start := p.now()
	content, err := p.stages.Fetcher.Fetch(ctx)
	if err != nil {
		return fail("fetch", err)
	}
	if content == nil {
		return fail("fetch", ErrNoContent)
	}
	summary.track("fetch", start, p.now())
	summary.PostURL = content.SourceURL
	fmt.Fprintf(p.out, "  Post: %s\n", content.SourceURL)

	// 2. Normalize
	start = p.now()
	text := p.stages.Normalize(content.Markup)
	summary.track("normalize", start, p.now())
	summary.TextChars = len(text)
	if strings.TrimSpace(text) == "" {
		return fail("normalize", ErrNoText)
	}
	fmt.Fprintf(p.out, "  Cleaned text: %d characters\n", len(text))

	// 3. Script
	fmt.Fprintf(p.out, "Writing podcast script with %s...\n", p.stages.Scriptwriter.Name())
	start = p.now()
	podcastScript, err := p.stages.Scriptwriter.Write(ctx, text)
	if err != nil {
		return fail("script", err)
	}
	summary.track("script", start, p.now())
	summary.ScriptChars = len(podcastScript)
	fmt.Fprintf(p.out, "  Script: %d characters\n", len(podcastScript))

	// 4. Narrate
	fmt.Fprintln(p.out, "Generating audio...")
	start = p.now()
	artifact, err := p.stages.Narrator.Narrate(ctx, podcastScript)
	if err != nil {
		return fail("narrate", err)
	}
	summary.track("narrate", start, p.now())
	summary.AudioPath, summary.AudioBytes = artifact.Path, artifact.Size
	fmt.Fprintf(p.out, "  Audio: %s (%d bytes)\n", artifact.Path, artifact.Size)

	// 5. Publish
	summary.Title = internal.EpisodeTitle(p.now())
	fmt.Fprintf(p.out, "Publishing %q to %s...\n", summary.Title, p.channelID)
	start = p.now()
	resp, err := p.stages.Publisher.SendPodcastEpisode(ctx, p.channelID, artifact.Path, summary.Title, content.SourceURL)
	if err != nil {
		return fail("publish", err)
	}
	if resp == nil {
		return fail("publish", errors.New("no response from Telegram"))
	}
	if err := resp.Err(); err != nil {
		logger.Warn("Keeping audio file for inspection", "path", artifact.Path)
		return fail("publish", err)
	}
	summary.track("publish", start, p.now())
	summary.MessageID = resp.MessageID()
	fmt.Fprintf(p.out, "  Published, message id %d\n", summary.MessageID)

	// 6. Cleanup
	p.cleanup(logger, summary, artifact.Path)

	summary.Finished = p.now()
	logger.Info("Run complete", "post", summary.PostURL, "message_id", summary.MessageID, "duration", summary.Duration())
	return summary, nil
}

// cleanup archives or deletes the published audio; failures are only warnings
func (p *Processor) cleanup(logger *log.Logger, summary *Summary, path string) {
	if p.archiveDir != "" {
		archived, err := archive.Episode(path, p.archiveDir, p.now())
		summary.AudioKept = true
		if err != nil {
			summary.CleanupError = err.Error()
			logger.Warn("Could not archive audio file", "path", path, "error", err)
			return
		}
		summary.AudioPath = archived
		fmt.Fprintf(p.out, "  Archived audio to %s\n", archived)
		return
	}
	if p.keepAudio {
		summary.AudioKept = true
		return
	}
	if err := os.Remove(path); err != nil {
		summary.AudioKept = true
		summary.CleanupError = err.Error()
		logger.Warn("Could not delete audio file", "path", path, "error", err)
		return
	}
	summary.AudioDeleted = true
}
