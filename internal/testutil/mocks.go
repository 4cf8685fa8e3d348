package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"codeberg.org/snonux/newscast/internal/audio"
	"codeberg.org/snonux/newscast/internal/fetch"
	"codeberg.org/snonux/newscast/internal/telegram"
)

// StubFetcher returns a fixed post or error
type StubFetcher struct {
	Content *fetch.RawContent
	Err     error
	Calls   int
}

// Fetch implements the fetch stage
func (s *StubFetcher) Fetch(ctx context.Context) (*fetch.RawContent, error) {
	s.Calls++
	return s.Content, s.Err
}

// StubScriptwriter returns a fixed script and records its input
type StubScriptwriter struct {
	Script string
	Err    error
	Input  string
	Calls  int
}

// Write implements the script stage
func (s *StubScriptwriter) Write(ctx context.Context, text string) (string, error) {
	s.Calls++
	s.Input = text
	return s.Script, s.Err
}

// Name implements the script stage
func (s *StubScriptwriter) Name() string {
	return "stub"
}

// StubNarrator writes Audio to Path
type StubNarrator struct {
	Path  string
	Audio []byte
	Err   error
	Input string
	Calls int
}

// Narrate implements the narrate stage
func (s *StubNarrator) Narrate(ctx context.Context, script string) (*audio.Artifact, error) {
	s.Calls++
	s.Input = script
	if s.Err != nil {
		return nil, s.Err
	}
	if err := os.WriteFile(s.Path, s.Audio, 0644); err != nil {
		return nil, fmt.Errorf("stub narrator: %w", err)
	}
	return &audio.Artifact{Path: s.Path, Size: int64(len(s.Audio)), Provider: "stub"}, nil
}

// PublishCall records one SendPodcastEpisode call
type PublishCall struct {
	ChatID    string
	AudioPath string
	Title     string
	PostURL   string
	FileFound bool
}

// StubPublisher answers uploads with a fixed envelope
type StubPublisher struct {
	Response *telegram.Response
	Err      error
	Calls    []PublishCall
}

// SendPodcastEpisode implements the publish stage
func (s *StubPublisher) SendPodcastEpisode(ctx context.Context, chatID, audioPath, title, postURL string) (*telegram.Response, error) {
	_, statErr := os.Stat(audioPath)
	s.Calls = append(s.Calls, PublishCall{
		ChatID:    chatID,
		AudioPath: audioPath,
		Title:     title,
		PostURL:   postURL,
		FileFound: statErr == nil,
	})
	return s.Response, s.Err
}

// OKResponse is a successful sendAudio envelope for messageID
func OKResponse(messageID int64) *telegram.Response {
	result, _ := json.Marshal(map[string]int64{"message_id": messageID})
	return &telegram.Response{OK: true, Result: result}
}

// ErrorResponse is an ok=false envelope
func ErrorResponse(code int, description string) *telegram.Response {
	return &telegram.Response{OK: false, ErrorCode: code, Description: description}
}
