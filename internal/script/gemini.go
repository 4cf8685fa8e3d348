package script

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiWriter writes scripts with the Gemini API
type GeminiWriter struct {
	config *Config
}

// NewGeminiWriter creates a new Gemini scriptwriter. The API client is
// created per call because it needs the caller's context.
func NewGeminiWriter(config *Config) (*GeminiWriter, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	return &GeminiWriter{config: config}, nil
}

// Write implements Writer
func (w *GeminiWriter) Write(ctx context.Context, text string) (string, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  w.config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if w.config.GeminiBaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: w.config.GeminiBaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	model := w.config.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(BuildPrompt(text)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(w.config.temperature()),
		MaxOutputTokens:   int32(w.config.maxTokens()),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	script := resp.Text()
	if script == "" {
		return "", ErrEmptyScript
	}
	return script, nil
}

// Name implements Writer
func (w *GeminiWriter) Name() string {
	return "gemini"
}
