package audio

import (
	"context"
	"errors"
	"os"
	"testing"
)

// mockProvider implements Provider interface for testing
type mockProvider struct {
	name          string
	generateErr   error
	availableErr  error
	generateCalls int
	content       []byte
}

func (m *mockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.generateCalls++
	if m.generateErr != nil {
		return m.generateErr
	}
	if m.content != nil {
		return os.WriteFile(outputFile, m.content, 0644)
	}
	return nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) IsAvailable() error {
	return m.availableErr
}

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "replicate" {
		t.Errorf("Expected provider 'replicate', got '%s'", config.Provider)
	}
	if config.OutputFile != "podcast_audio.wav" {
		t.Errorf("Expected output file 'podcast_audio.wav', got '%s'", config.OutputFile)
	}
	if config.ReplicateModel != "minimax/speech-02-turbo" {
		t.Errorf("Expected Replicate model 'minimax/speech-02-turbo', got '%s'", config.ReplicateModel)
	}
	if config.ReplicateVoice != "Deep_Voice_Man" {
		t.Errorf("Expected voice 'Deep_Voice_Man', got '%s'", config.ReplicateVoice)
	}
	if config.OpenAIModel != "gpt-4o-mini-tts" {
		t.Errorf("Expected OpenAI model 'gpt-4o-mini-tts', got '%s'", config.OpenAIModel)
	}
	if config.OpenAIVoice != "onyx" {
		t.Errorf("Expected OpenAI voice 'onyx', got '%s'", config.OpenAIVoice)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantErr  bool
		errMsg   string
		wantName string
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: true,
			errMsg:  "Replicate API token is required",
		},
		{
			name:    "openai provider without key",
			config:  &Config{Provider: "openai"},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:    "unknown provider",
			config:  &Config{Provider: "unknown"},
			wantErr: true,
			errMsg:  "unknown audio provider: unknown",
		},
		{
			name:     "replicate with token",
			config:   &Config{Provider: "replicate", ReplicateToken: "r8_test"},
			wantName: "replicate",
		},
		{
			name:     "openai with key",
			config:   &Config{Provider: "openai", OpenAIKey: "sk-test"},
			wantName: "openai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if err.Error() != tt.errMsg {
					t.Errorf("NewProvider() error = %v, want %v", err.Error(), tt.errMsg)
				}
				if provider != nil {
					t.Errorf("NewProvider() returned non-nil provider on error")
				}
				return
			}
			if provider.Name() != tt.wantName {
				t.Errorf("Name() = %v, want %v", provider.Name(), tt.wantName)
			}
		})
	}
}

func TestNewConfiguredProvider(t *testing.T) {
	provider, err := NewConfiguredProvider(&Config{
		Provider:       "replicate",
		Fallback:       "openai",
		ReplicateToken: "r8_test",
		OpenAIKey:      "sk-test",
	})
	if err != nil {
		t.Fatalf("NewConfiguredProvider() error = %v", err)
	}
	if want := "replicate (fallback: openai)"; provider.Name() != want {
		t.Errorf("Name() = %q, want %q", provider.Name(), want)
	}

	// An unusable fallback leaves the primary alone
	provider, err = NewConfiguredProvider(&Config{
		Provider:       "replicate",
		Fallback:       "openai",
		ReplicateToken: "r8_test",
	})
	if err != nil {
		t.Fatalf("NewConfiguredProvider() error = %v", err)
	}
	if provider.Name() != "replicate" {
		t.Errorf("Name() = %q, want replicate", provider.Name())
	}
}

func TestProviderWithFallback(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	// Test successful primary
	ctx := context.Background()
	err := provider.GenerateAudio(ctx, "test", "output.wav")
	if err != nil {
		t.Errorf("GenerateAudio() unexpected error: %v", err)
	}
	if primary.generateCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.generateCalls)
	}
	if fallback.generateCalls != 0 {
		t.Errorf("Expected 0 fallback calls, got %d", fallback.generateCalls)
	}

	// Test primary failure, fallback success
	primary.generateErr = errors.New("primary failed")
	primary.generateCalls = 0

	err = provider.GenerateAudio(ctx, "test", "output.wav")
	if err != nil {
		t.Errorf("GenerateAudio() unexpected error: %v", err)
	}
	if primary.generateCalls != 1 {
		t.Errorf("Expected 1 primary call, got %d", primary.generateCalls)
	}
	if fallback.generateCalls != 1 {
		t.Errorf("Expected 1 fallback call, got %d", fallback.generateCalls)
	}

	// Test both fail
	fallbackErr := errors.New("fallback failed")
	fallback.generateErr = fallbackErr
	primary.generateCalls = 0
	fallback.generateCalls = 0

	err = provider.GenerateAudio(ctx, "test", "output.wav")
	if err == nil {
		t.Fatal("GenerateAudio() expected error when both providers fail")
	}
	if !errors.Is(err, fallbackErr) {
		t.Errorf("GenerateAudio() error = %v, want it to wrap the fallback error", err)
	}
}

func TestProviderWithFallbackName(t *testing.T) {
	provider := NewProviderWithFallback(&mockProvider{name: "primary"}, &mockProvider{name: "fallback"})

	expected := "primary (fallback: fallback)"
	if provider.Name() != expected {
		t.Errorf("Name() = %v, want %v", provider.Name(), expected)
	}
}

func TestProviderWithFallbackIsAvailable(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}

	provider := NewProviderWithFallback(primary, fallback)

	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error: %v", err)
	}

	primary.availableErr = errors.New("primary unavailable")
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error when fallback available: %v", err)
	}

	fallback.availableErr = errors.New("fallback unavailable")
	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error when both providers unavailable")
	}
}
