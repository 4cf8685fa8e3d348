package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/newscast/internal/audio"
	"codeberg.org/snonux/newscast/internal/fetch"
	"codeberg.org/snonux/newscast/internal/script"
	"codeberg.org/snonux/newscast/internal/telegram"
)

const (
	// DefaultNewsletterURL is used when no newsletter is given
	DefaultNewsletterURL = "https://giadafromgamma.substack.com"

	// DefaultChannelID is used when no channel is given
	DefaultChannelID = "-1003291063219"
)

// Config is the fully resolved run configuration
type Config struct {
	NewsletterURL string
	ChannelID     string
	LogLevel      string
	KeepAudio     bool
	ArchiveDir    string

	Fetch    *fetch.Config
	Script   *script.Config
	Audio    *audio.Config
	Telegram *telegram.Config
}

func setDefaults() {
	viper.SetDefault("newsletter.url", DefaultNewsletterURL)
	viper.SetDefault("telegram.channel_id", DefaultChannelID)
	viper.SetDefault("telegram.api_url", telegram.DefaultAPIURL)
	viper.SetDefault("telegram.timeout", telegram.DefaultTimeout)
	viper.SetDefault("output.audio_file", audio.DefaultOutputFile)
	viper.SetDefault("log.level", "info")

	viper.SetDefault("fetch.timeout", fetch.DefaultTimeout)
	viper.SetDefault("fetch.requests_per_second", fetch.DefaultRequestsPerSecond)
	viper.SetDefault("fetch.breaker_threshold", fetch.DefaultBreakerThreshold)
	viper.SetDefault("fetch.retry_attempts", 3)
	viper.SetDefault("fetch.min_content_length", fetch.DefaultMinContentLength)

	s := script.DefaultConfig()
	viper.SetDefault("script.provider", s.Provider)
	viper.SetDefault("script.openai_model", s.OpenAIModel)
	viper.SetDefault("script.gemini_model", s.GeminiModel)
	viper.SetDefault("script.temperature", s.Temperature)
	viper.SetDefault("script.max_tokens", s.MaxTokens)

	a := audio.DefaultProviderConfig()
	viper.SetDefault("audio.provider", a.Provider)
	viper.SetDefault("audio.replicate_model", a.ReplicateModel)
	viper.SetDefault("audio.voice", a.ReplicateVoice)
	viper.SetDefault("audio.openai_model", a.OpenAIModel)
	viper.SetDefault("audio.openai_voice", a.OpenAIVoice)
	viper.SetDefault("audio.espeak_voice", a.ESpeakVoice)
}

// credential returns the environment variable if set, otherwise the config key
func credential(envVar, key string) string {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v
	}
	return strings.TrimSpace(viper.GetString(key))
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	return credential("OPENAI_API_KEY", "openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	return credential("GEMINI_API_KEY", "gemini.api_key")
}

// GetReplicateToken retrieves the Replicate API token from environment or config
func GetReplicateToken() string {
	return credential("REPLICATE_API_TOKEN", "replicate.api_token")
}

// GetTelegramToken retrieves the bot token from environment or config
func GetTelegramToken() string {
	return credential("TELEGRAM_API_BOT", "telegram.bot_token")
}

// GetSessionCookie retrieves the optional substack.sid cookie
func GetSessionCookie() string {
	return credential("SUBSTACK_SID", "fetch.session_cookie")
}

// LoadConfig resolves viper settings and positional arguments
// ([newsletter-url] [channel-id]) into a Config
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{
		NewsletterURL: viper.GetString("newsletter.url"),
		ChannelID:     viper.GetString("telegram.channel_id"),
		LogLevel:      viper.GetString("log.level"),
		KeepAudio:     viper.GetBool("output.keep_audio"),
		ArchiveDir:    strings.TrimSpace(viper.GetString("output.archive_dir")),
	}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		cfg.NewsletterURL = strings.TrimSpace(args[0])
	}
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		channel := strings.TrimSpace(args[1])
		if err := checkChannelArg(channel); err != nil {
			return nil, err
		}
		cfg.ChannelID = channel
	}
	if cfg.NewsletterURL == "" {
		cfg.NewsletterURL = DefaultNewsletterURL
	}
	if cfg.ChannelID == "" {
		cfg.ChannelID = DefaultChannelID
	}
	if _, err := fetch.ParseSite(cfg.NewsletterURL); err != nil {
		return nil, err
	}

	cfg.Fetch = fetchConfig(cfg.NewsletterURL)
	cfg.Script = scriptConfig()
	cfg.Audio = audioConfig()
	cfg.Telegram = TelegramConfig()

	if cfg.Fetch.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("fetch.requests_per_second must not be negative")
	}
	return cfg, nil
}

// checkChannelArg rejects flags that ended up in the channel position.
// Flag parsing stops at the newsletter URL, so the only dash-prefixed
// channel that is valid is a numeric ID such as -1001234567890.
func checkChannelArg(channel string) error {
	if !strings.HasPrefix(channel, "-") {
		return nil
	}
	digits := strings.TrimPrefix(channel, "-")
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return fmt.Errorf("unexpected flag %q after the newsletter URL: put flags before positional arguments", channel)
	}
	return nil
}

func fetchConfig(newsletterURL string) *fetch.Config {
	cfg := fetch.DefaultConfig(newsletterURL)
	cfg.Timeout = durationOr(viper.GetDuration("fetch.timeout"), fetch.DefaultTimeout)
	cfg.RequestsPerSecond = viper.GetFloat64("fetch.requests_per_second")
	cfg.BreakerThreshold = viper.GetUint32("fetch.breaker_threshold")
	cfg.MinContentLength = viper.GetInt("fetch.min_content_length")
	cfg.SessionCookie = GetSessionCookie()
	if attempts := viper.GetInt("fetch.retry_attempts"); attempts > 0 {
		cfg.Retry.MaxAttempts = attempts
	}
	return cfg
}

func scriptConfig() *script.Config {
	return &script.Config{
		Provider:      viper.GetString("script.provider"),
		OpenAIKey:     GetOpenAIKey(),
		OpenAIModel:   viper.GetString("script.openai_model"),
		OpenAIBaseURL: OpenAIBaseURL(),
		GeminiKey:     GetGeminiKey(),
		GeminiModel:   viper.GetString("script.gemini_model"),
		GeminiBaseURL: viper.GetString("gemini.base_url"),
		Temperature:   float32(viper.GetFloat64("script.temperature")),
		MaxTokens:     viper.GetInt("script.max_tokens"),
	}
}

func audioConfig() *audio.Config {
	cfg := audio.DefaultProviderConfig()
	cfg.Provider = viper.GetString("audio.provider")
	cfg.Fallback = viper.GetString("audio.fallback")
	cfg.OutputFile = viper.GetString("output.audio_file")
	cfg.ReplicateToken = GetReplicateToken()
	cfg.ReplicateModel = viper.GetString("audio.replicate_model")
	cfg.ReplicateVoice = viper.GetString("audio.voice")
	cfg.OpenAIKey = GetOpenAIKey()
	cfg.OpenAIBaseURL = OpenAIBaseURL()
	cfg.OpenAIModel = viper.GetString("audio.openai_model")
	cfg.OpenAIVoice = viper.GetString("audio.openai_voice")
	cfg.ESpeakVoice = viper.GetString("audio.espeak_voice")
	return cfg
}

// TelegramConfig resolves the Bot API settings
func TelegramConfig() *telegram.Config {
	cfg := telegram.DefaultConfig(GetTelegramToken())
	if apiURL := viper.GetString("telegram.api_url"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	cfg.Timeout = durationOr(viper.GetDuration("telegram.timeout"), telegram.DefaultTimeout)
	return cfg
}

// OpenAIBaseURL returns the configured OpenAI-compatible endpoint, empty for the public API
func OpenAIBaseURL() string {
	return strings.TrimSpace(viper.GetString("openai.base_url"))
}

// LogLevel returns the configured log level
func LogLevel() string {
	if level := viper.GetString("log.level"); level != "" {
		return level
	}
	return "info"
}

// ChannelID returns the configured channel, or the default
func ChannelID() string {
	if id := viper.GetString("telegram.channel_id"); id != "" {
		return id
	}
	return DefaultChannelID
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
