package script

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIWriter writes scripts with OpenAI chat completions
type OpenAIWriter struct {
	client *openai.Client
	config *Config
}

// NewOpenAIWriter creates a new OpenAI scriptwriter
func NewOpenAIWriter(config *Config) (*OpenAIWriter, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIWriter{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Write implements Writer
func (w *OpenAIWriter) Write(ctx context.Context, text string) (string, error) {
	model := w.config.OpenAIModel
	if model == "" {
		model = openai.GPT4o
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(text),
			},
		},
		MaxTokens:   w.config.maxTokens(),
		Temperature: w.config.temperature(),
	}

	resp, err := w.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyScript
	}

	return resp.Choices[0].Message.Content, nil
}

// Name implements Writer
func (w *OpenAIWriter) Name() string {
	return "openai"
}
