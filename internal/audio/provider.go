package audio

import (
	"context"
	"fmt"
	"net/http"

	"codeberg.org/snonux/newscast/internal/logging"
)

// DefaultOutputFile is where the narrated episode is written
const DefaultOutputFile = "podcast_audio.wav"

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateAudio generates audio from text and saves it to the specified file
	GenerateAudio(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider   string // "replicate", "openai" or "espeak"
	Fallback   string // optional provider tried when Provider fails
	OutputFile string

	// Replicate-specific settings
	ReplicateToken string
	ReplicateModel string
	ReplicateVoice string

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIModel   string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice   string  // "alloy", "echo", "onyx", ...
	OpenAISpeed   float64 // 0.25 to 4.0
	OpenAIBaseURL string

	// espeak-ng settings
	ESpeakVoice string
	ESpeakSpeed int

	// MaxDownloadBytes caps audio downloaded from a provider URL (0 = no limit)
	MaxDownloadBytes int64

	// HTTPClient downloads URL outputs; nil uses a client with DownloadTimeout
	HTTPClient *http.Client
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:         "replicate",
		OutputFile:       DefaultOutputFile,
		ReplicateModel:   "minimax/speech-02-turbo",
		ReplicateVoice:   "Deep_Voice_Man",
		OpenAIModel:      "gpt-4o-mini-tts",
		OpenAIVoice:      "onyx",
		OpenAISpeed:      1.0,
		ESpeakVoice:      "en-us+m3",
		ESpeakSpeed:      160,
		MaxDownloadBytes: 200 * 1024 * 1024,
	}
}

// NewProvider creates the provider named in config.Provider
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	return newNamedProvider(config.Provider, config)
}

// NewConfiguredProvider creates config.Provider, wrapped with config.Fallback
// when one is set and differs from the primary
func NewConfiguredProvider(config *Config) (Provider, error) {
	primary, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if config == nil || config.Fallback == "" || config.Fallback == config.Provider {
		return primary, nil
	}

	fallback, err := newNamedProvider(config.Fallback, config)
	if err != nil {
		logging.Warn("Fallback audio provider unavailable", "provider", config.Fallback, "error", err)
		return primary, nil
	}
	return NewProviderWithFallback(primary, fallback), nil
}

func newNamedProvider(name string, config *Config) (Provider, error) {
	var (
		provider Provider
		err      error
	)
	switch name {
	case "replicate":
		provider, err = NewReplicateProvider(config)
	case "openai":
		provider, err = NewOpenAIProvider(config)
	case "espeak":
		provider, err = NewESpeakProvider(config)
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// GenerateAudio tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	err := p.primary.GenerateAudio(ctx, text, outputFile)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}

	logging.Warn("Primary audio provider failed, falling back",
		"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)

	if fbErr := p.fallback.GenerateAudio(ctx, text, outputFile); fbErr != nil {
		return fmt.Errorf("primary %s: %v; fallback %s: %w", p.primary.Name(), err, p.fallback.Name(), fbErr)
	}
	return nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
