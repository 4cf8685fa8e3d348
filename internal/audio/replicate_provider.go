package audio

import (
	"context"
	"fmt"

	"github.com/replicate/replicate-go"

	"codeberg.org/snonux/newscast/internal/logging"
)

// runFunc runs a Replicate model and returns its raw output
type runFunc func(ctx context.Context, model string, input map[string]any) (any, error)

// ReplicateProvider implements Provider for Replicate hosted speech models
type ReplicateProvider struct {
	run    runFunc
	config *Config
	output *outputWriter
}

// NewReplicateProvider creates a new Replicate TTS provider
func NewReplicateProvider(config *Config) (*ReplicateProvider, error) {
	if config.ReplicateToken == "" {
		return nil, fmt.Errorf("Replicate API token is required")
	}

	client, err := replicate.NewClient(replicate.WithToken(config.ReplicateToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create Replicate client: %w", err)
	}

	run := func(ctx context.Context, model string, input map[string]any) (any, error) {
		out, err := client.Run(ctx, model, replicate.PredictionInput(input), nil)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return newReplicateProvider(config, run), nil
}

func newReplicateProvider(config *Config, run runFunc) *ReplicateProvider {
	return &ReplicateProvider{
		run:    run,
		config: config,
		output: newOutputWriter(config),
	}
}

// SpeechInput returns the model input for text: mono 32kHz 128kbps,
// deep male voice, English with normalization, neutral pitch/speed/volume
func (p *ReplicateProvider) SpeechInput(text string) map[string]any {
	voice := p.config.ReplicateVoice
	if voice == "" {
		voice = "Deep_Voice_Man"
	}
	return map[string]any{
		"text":                  text,
		"pitch":                 0,
		"speed":                 1,
		"volume":                1,
		"bitrate":               128000,
		"channel":               "mono",
		"voice_id":              voice,
		"sample_rate":           32000,
		"language_boost":        "English",
		"english_normalization": true,
	}
}

// GenerateAudio generates audio using the configured Replicate model
func (p *ReplicateProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateScript(text); err != nil {
		return err
	}

	model := p.model()
	logging.Debug("Replicate TTS request", "model", model, "chars", len(text))

	output, err := p.run(ctx, model, p.SpeechInput(text))
	if err != nil {
		return fmt.Errorf("Replicate TTS API error: %w", err)
	}

	return p.output.write(ctx, output, outputFile)
}

func (p *ReplicateProvider) model() string {
	if p.config.ReplicateModel == "" {
		return "minimax/speech-02-turbo"
	}
	return p.config.ReplicateModel
}

// Name returns the provider name
func (p *ReplicateProvider) Name() string {
	return "replicate"
}

// IsAvailable checks that a token is configured
func (p *ReplicateProvider) IsAvailable() error {
	if p.config.ReplicateToken == "" {
		return fmt.Errorf("Replicate API token not configured")
	}
	return nil
}
