package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestNarrator_Narrate(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "podcast_audio.wav")
	provider := &mockProvider{name: "mock", content: fakeAudio}

	artifact, err := NewNarrator(provider, outputFile).Narrate(context.Background(), "  Hello there.  ")
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if artifact.Path != outputFile {
		t.Errorf("Path = %q, want %q", artifact.Path, outputFile)
	}
	if artifact.Size != int64(len(fakeAudio)) {
		t.Errorf("Size = %d, want %d", artifact.Size, len(fakeAudio))
	}
	if artifact.Provider != "mock" {
		t.Errorf("Provider = %q", artifact.Provider)
	}
}

func TestNarrator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		provider *mockProvider
		wantErr  error
	}{
		{name: "blank script", script: " \n ", provider: &mockProvider{name: "mock"}, wantErr: ErrEmptyScript},
		{name: "provider failure", script: "hi there", provider: &mockProvider{name: "mock", generateErr: errors.New("boom")}},
		{name: "nothing written", script: "hi there", provider: &mockProvider{name: "mock"}},
		{name: "empty file", script: "hi there", provider: &mockProvider{name: "mock", content: []byte{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFile := filepath.Join(t.TempDir(), "podcast_audio.wav")
			_, err := NewNarrator(tt.provider, outputFile).Narrate(context.Background(), tt.script)
			if err == nil {
				t.Fatal("Narrate() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Narrate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == ErrEmptyScript && tt.provider.generateCalls != 0 {
				t.Error("provider called for a blank script")
			}
		})
	}
}

func TestNewNarrator_DefaultOutput(t *testing.T) {
	n := NewNarrator(&mockProvider{name: "mock"}, "")
	if n.outputFile != DefaultOutputFile {
		t.Errorf("outputFile = %q, want %q", n.outputFile, DefaultOutputFile)
	}
	if n.Name() != "mock" {
		t.Errorf("Name() = %q", n.Name())
	}
}
