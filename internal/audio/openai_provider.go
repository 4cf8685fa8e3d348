package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/newscast/internal/logging"
)

// OpenAIMaxInput is the longest input the OpenAI speech endpoint accepts
const OpenAIMaxInput = 4096

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
	output *outputWriter
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		output: newOutputWriter(config),
	}, nil
}

// GenerateAudio generates audio using OpenAI TTS
func (p *OpenAIProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	if err := ValidateScript(text); err != nil {
		return err
	}
	if err := ValidateLength(text, OpenAIMaxInput); err != nil {
		return err
	}

	model := p.config.OpenAIModel
	if model == "" {
		model = "gpt-4o-mini-tts"
	}
	voice := p.config.OpenAIVoice
	if voice == "" {
		voice = "onyx"
	}
	speed := p.config.OpenAISpeed
	if speed == 0 {
		speed = 1.0
	}

	logging.Debug("OpenAI TTS request", "model", model, "voice", voice, "speed", speed, "chars", len(text))

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		Speed:          speed,
		ResponseFormat: responseFormat(outputFile),
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not have access to model") && model == "gpt-4o-mini-tts" {
			return fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try tts-1-hd instead", err, model)
		}
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	return p.output.copyToFile(response, outputFile)
}

// responseFormat picks the speech format matching the file extension, mp3 otherwise
func responseFormat(outputFile string) openai.SpeechResponseFormat {
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		return openai.SpeechResponseFormatWav
	case ".opus":
		return openai.SpeechResponseFormatOpus
	case ".aac":
		return openai.SpeechResponseFormatAac
	case ".flac":
		return openai.SpeechResponseFormatFlac
	default:
		return openai.SpeechResponseFormatMp3
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that an API key is configured. A test call would
// cost credits, so the key is not verified remotely.
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
