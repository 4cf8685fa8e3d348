package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ESpeakProvider implements Provider for the local espeak-ng engine. It
// needs no network access and always writes WAV.
type ESpeakProvider struct {
	voice string
	speed int
	bin   string
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) (*ESpeakProvider, error) {
	p := &ESpeakProvider{
		voice: "en-us+m3",
		speed: 160,
		bin:   "espeak-ng",
	}
	if config != nil {
		if config.ESpeakVoice != "" {
			p.voice = config.ESpeakVoice
		}
		if config.ESpeakSpeed > 0 {
			p.speed = clamp(config.ESpeakSpeed, 80, 450)
		}
	}

	if err := p.IsAvailable(); err != nil {
		return nil, err
	}
	return p, nil
}

// args builds the espeak-ng command line; text is passed on stdin
func (p *ESpeakProvider) args(outputFile string) []string {
	return []string{
		"-v", p.voice,
		"-s", strconv.Itoa(p.speed),
		"-w", outputFile,
		"--stdin",
	}
}

// GenerateAudio generates a WAV file using espeak-ng
func (p *ESpeakProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateScript(text); err != nil {
		return err
	}
	if err := ensureDir(outputFile); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, p.bin, p.args(outputFile)...)
	cmd.Stdin = bytes.NewBufferString(text)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	if err := exec.Command(p.bin, "--version").Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
