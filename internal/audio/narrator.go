package audio

import (
	"context"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/newscast/internal/logging"
)

// Artifact is a narrated episode on local disk
type Artifact struct {
	Path     string
	Size     int64
	Provider string
}

// Narrator turns scripts into audio files with one provider
type Narrator struct {
	provider   Provider
	outputFile string
}

// NewNarrator creates a narrator writing to outputFile (DefaultOutputFile when empty)
func NewNarrator(provider Provider, outputFile string) *Narrator {
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}
	return &Narrator{provider: provider, outputFile: outputFile}
}

// Name returns the underlying provider name
func (n *Narrator) Name() string {
	return n.provider.Name()
}

// Narrate synthesizes script and returns the written file
func (n *Narrator) Narrate(ctx context.Context, script string) (*Artifact, error) {
	text := strings.TrimSpace(script)
	if err := ValidateScript(text); err != nil {
		return nil, err
	}

	logging.Info("Narrating script", "provider", n.provider.Name(), "chars", len(text), "output", n.outputFile)

	if err := n.provider.GenerateAudio(ctx, text, n.outputFile); err != nil {
		return nil, err
	}

	info, err := os.Stat(n.outputFile)
	if err != nil {
		return nil, fmt.Errorf("audio file not written: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(n.outputFile)
		return nil, fmt.Errorf("audio file %s is empty", n.outputFile)
	}

	return &Artifact{Path: n.outputFile, Size: info.Size(), Provider: n.provider.Name()}, nil
}
