package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sashabaranov/go-openai"
)

// Catalog groups model IDs by what newscast can use them for
type Catalog struct {
	Chat   []string
	Speech []string
	Other  int
}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the public API.
func NewLister(apiKey, baseURL string) *Lister {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Catalog fetches and categorizes the models visible to the key
func (l *Lister) Catalog(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .newscast.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	catalog := &Catalog{}
	for _, model := range list.Models {
		switch id := model.ID; {
		case strings.Contains(id, "tts"):
			catalog.Speech = append(catalog.Speech, id)
		case strings.Contains(id, "audio"), strings.Contains(id, "realtime"), strings.Contains(id, "transcribe"):
			catalog.Other++
		case strings.HasPrefix(id, "gpt-"), strings.HasPrefix(id, "o1"), strings.HasPrefix(id, "o3"),
			strings.HasPrefix(id, "o4"), strings.Contains(id, "chat"):
			catalog.Chat = append(catalog.Chat, id)
		default:
			catalog.Other++
		}
	}

	sort.Strings(catalog.Chat)
	sort.Strings(catalog.Speech)
	return catalog, nil
}

// ListAvailableModels prints the catalog as a table to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	catalog, err := l.Catalog(ctx)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.SetTitle("Available OpenAI Models")
	t.AppendHeader(table.Row{"Use", "Model"})

	appendGroup(t, "script (chat)", catalog.Chat)
	t.AppendSeparator()
	appendGroup(t, "narration (tts)", catalog.Speech)
	t.AppendFooter(table.Row{"other", fmt.Sprintf("%d not listed", catalog.Other)})
	t.Render()
	return nil
}

func appendGroup(t table.Writer, use string, ids []string) {
	if len(ids) == 0 {
		t.AppendRow(table.Row{use, "none found"})
		return
	}
	for _, id := range ids {
		t.AppendRow(table.Row{use, id})
	}
}
