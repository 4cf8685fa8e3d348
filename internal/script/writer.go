package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyScript is returned when the model answers with no text
var ErrEmptyScript = errors.New("model returned an empty script")

// Writer turns newsletter text into a podcast script
type Writer interface {
	// Write returns the spoken script for the given text
	Write(ctx context.Context, text string) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds scriptwriter settings
type Config struct {
	Provider string // "openai" or "gemini"

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string // empty uses the public API

	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string // empty uses the public API

	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the default scriptwriter configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		OpenAIModel: "gpt-4o",
		GeminiModel: "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

// New creates the writer selected by config.Provider
func New(config *Config) (Writer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch strings.ToLower(config.Provider) {
	case "", "openai":
		return NewOpenAIWriter(config)
	case "gemini":
		return NewGeminiWriter(config)
	default:
		return nil, fmt.Errorf("unknown script provider: %s", config.Provider)
	}
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return 0.7
	}
	return c.Temperature
}

func (c *Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 2000
	}
	return c.MaxTokens
}
