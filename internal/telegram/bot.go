package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIURL is the public Bot API endpoint
	DefaultAPIURL = "https://api.telegram.org"

	// DefaultTimeout bounds every Bot API call
	DefaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a Bot API reply is read
	maxResponseBytes = 1 << 20
)

// Config holds Bot API settings
type Config struct {
	BotToken  string
	APIURL    string
	Timeout   time.Duration
	ParseMode string
}

// DefaultConfig returns the default settings for token
func DefaultConfig(token string) *Config {
	return &Config{
		BotToken:  token,
		APIURL:    DefaultAPIURL,
		Timeout:   DefaultTimeout,
		ParseMode: "HTML",
	}
}

// Response is the Bot API JSON envelope
type Response struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// APIError describes an ok=false reply
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d: %s", e.Code, e.Description)
}

// Err returns an *APIError for ok=false replies and nil otherwise
func (r *Response) Err() error {
	if r.OK {
		return nil
	}
	return &APIError{Code: r.ErrorCode, Description: r.Description}
}

// MessageID returns the message_id of a sent message, or 0
func (r *Response) MessageID() int64 {
	var msg struct {
		MessageID int64 `json:"message_id"`
	}
	if len(r.Result) == 0 || json.Unmarshal(r.Result, &msg) != nil {
		return 0
	}
	return msg.MessageID
}

// Chat is the subset of a getChat result shown to users
type Chat struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Username    string `json:"username"`
	Description string `json:"description"`
}

// Chat decodes the result of a getChat reply
func (r *Response) Chat() (*Chat, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	var chat Chat
	if err := json.Unmarshal(r.Result, &chat); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	return &chat, nil
}

// Bot calls the Bot API on behalf of one bot token
type Bot struct {
	config *Config
	client *http.Client
}

// NewBot creates a bot client
func NewBot(config *Config) (*Bot, error) {
	if config == nil || strings.TrimSpace(config.BotToken) == "" {
		return nil, fmt.Errorf("Telegram bot token is required (set TELEGRAM_API_BOT)")
	}

	cfg := *config
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ParseMode == "" {
		cfg.ParseMode = "HTML"
	}

	return &Bot{
		config: &cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (b *Bot) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.config.APIURL, b.config.BotToken, method)
}

// SendMessage posts a text message. An empty parseMode uses the configured default.
func (b *Bot) SendMessage(ctx context.Context, chatID, text, parseMode string) (*Response, error) {
	if parseMode == "" {
		parseMode = b.config.ParseMode
	}
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", parseMode)
	return b.postForm(ctx, "sendMessage", form)
}

// GetChat returns information about a chat or channel
func (b *Bot) GetChat(ctx context.Context, chatID string) (*Response, error) {
	form := url.Values{}
	form.Set("chat_id", chatID)
	return b.postForm(ctx, "getChat", form)
}

func (b *Bot) postForm(ctx context.Context, method string, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint(method), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", b.redact(err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req, method)
}

// do sends req and decodes the envelope regardless of the HTTP status
func (b *Bot) do(req *http.Request, method string) (*Response, error) {
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, b.redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", method, err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%s: decode response (HTTP %d): %w", method, resp.StatusCode, err)
	}
	return &out, nil
}

// redact strips the bot token from a *url.Error. It must run before the
// error is wrapped, since wrapping renders the message.
func (b *Bot) redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = strings.ReplaceAll(ue.URL, b.config.BotToken, "<token>")
	}
	return err
}
