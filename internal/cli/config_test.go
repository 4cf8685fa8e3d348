package cli

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	setDefaults()
	t.Cleanup(viper.Reset)

	for _, env := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "REPLICATE_API_TOKEN", "TELEGRAM_API_BOT", "SUBSTACK_SID"} {
		t.Setenv(env, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.NewsletterURL != DefaultNewsletterURL {
		t.Errorf("NewsletterURL = %q", cfg.NewsletterURL)
	}
	if cfg.ChannelID != DefaultChannelID {
		t.Errorf("ChannelID = %q", cfg.ChannelID)
	}
	if cfg.Fetch.NewsletterURL != DefaultNewsletterURL || cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Fetch = %+v", cfg.Fetch)
	}
	if cfg.Fetch.Retry.MaxAttempts != 3 || cfg.Fetch.MinContentLength != 1000 {
		t.Errorf("Fetch retry/min length = %d/%d", cfg.Fetch.Retry.MaxAttempts, cfg.Fetch.MinContentLength)
	}
	if len(cfg.Fetch.Proxies) != 3 {
		t.Errorf("Fetch proxies = %d, want 3", len(cfg.Fetch.Proxies))
	}
	if cfg.Script.Provider != "openai" || cfg.Script.OpenAIModel != "gpt-4o" || cfg.Script.MaxTokens != 2000 {
		t.Errorf("Script = %+v", cfg.Script)
	}
	if cfg.Audio.Provider != "replicate" || cfg.Audio.OutputFile != "podcast_audio.wav" || cfg.Audio.ReplicateVoice != "Deep_Voice_Man" {
		t.Errorf("Audio = %+v", cfg.Audio)
	}
	if cfg.Telegram.APIURL != "https://api.telegram.org" || cfg.Telegram.ParseMode != "HTML" {
		t.Errorf("Telegram = %+v", cfg.Telegram)
	}
}

func TestLoadConfig_PositionalArgs(t *testing.T) {
	resetViper(t)

	cfg, err := LoadConfig([]string{"https://other.substack.com", "@otherchannel"})
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.NewsletterURL != "https://other.substack.com" || cfg.Fetch.NewsletterURL != "https://other.substack.com" {
		t.Errorf("NewsletterURL = %q / %q", cfg.NewsletterURL, cfg.Fetch.NewsletterURL)
	}
	if cfg.ChannelID != "@otherchannel" {
		t.Errorf("ChannelID = %q", cfg.ChannelID)
	}
}

func TestLoadConfig_ChannelArg(t *testing.T) {
	tests := []struct {
		channel string
		wantErr bool
	}{
		{channel: "-1003291063219"},
		{channel: "@mychannel"},
		{channel: "123456"},
		{channel: "--keep-audio", wantErr: true},
		{channel: "-o", wantErr: true},
		{channel: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			resetViper(t)
			cfg, err := LoadConfig([]string{"https://example.substack.com", tt.channel})
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.ChannelID != tt.channel {
				t.Errorf("ChannelID = %q, want %q", cfg.ChannelID, tt.channel)
			}
		})
	}
}

func TestLoadConfig_InvalidURL(t *testing.T) {
	resetViper(t)

	if _, err := LoadConfig([]string{"ftp://nope"}); err == nil {
		t.Error("LoadConfig() expected error for unsupported scheme")
	}
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		key     string
		getter  func() string
		fromEnv string
		fromCfg string
	}{
		{"openai", "OPENAI_API_KEY", "openai.api_key", GetOpenAIKey, "sk-env", "sk-cfg"},
		{"gemini", "GEMINI_API_KEY", "gemini.api_key", GetGeminiKey, "g-env", "g-cfg"},
		{"replicate", "REPLICATE_API_TOKEN", "replicate.api_token", GetReplicateToken, "r8-env", "r8-cfg"},
		{"telegram", "TELEGRAM_API_BOT", "telegram.bot_token", GetTelegramToken, "1:env", "1:cfg"},
		{"substack", "SUBSTACK_SID", "fetch.session_cookie", GetSessionCookie, "sid-env", "sid-cfg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.fromCfg)

			if got := tt.getter(); got != tt.fromCfg {
				t.Errorf("without env got %q, want config value %q", got, tt.fromCfg)
			}

			t.Setenv(tt.env, tt.fromEnv)
			if got := tt.getter(); got != tt.fromEnv {
				t.Errorf("with env got %q, want %q", got, tt.fromEnv)
			}
		})
	}
}

func TestLoadConfig_CredentialsFlowIntoStages(t *testing.T) {
	resetViper(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REPLICATE_API_TOKEN", "r8-test")
	t.Setenv("TELEGRAM_API_BOT", "1:test")
	t.Setenv("SUBSTACK_SID", "sid")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Script.OpenAIKey != "sk-test" || cfg.Audio.OpenAIKey != "sk-test" {
		t.Error("OpenAI key not passed to script and audio configs")
	}
	if cfg.Audio.ReplicateToken != "r8-test" {
		t.Errorf("ReplicateToken = %q", cfg.Audio.ReplicateToken)
	}
	if cfg.Telegram.BotToken != "1:test" {
		t.Errorf("BotToken = %q", cfg.Telegram.BotToken)
	}
	if cfg.Fetch.SessionCookie != "sid" {
		t.Errorf("SessionCookie = %q", cfg.Fetch.SessionCookie)
	}
}

func TestLoadConfig_OutputAndEndpoints(t *testing.T) {
	resetViper(t)
	viper.Set("output.archive_dir", " /var/lib/newscast/episodes ")
	viper.Set("output.keep_audio", true)
	viper.Set("openai.base_url", "http://localhost:8080/v1")
	viper.Set("gemini.base_url", "http://localhost:8081/")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ArchiveDir != "/var/lib/newscast/episodes" || !cfg.KeepAudio {
		t.Errorf("ArchiveDir/KeepAudio = %q/%v", cfg.ArchiveDir, cfg.KeepAudio)
	}
	if cfg.Script.OpenAIBaseURL != "http://localhost:8080/v1" || cfg.Audio.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("OpenAI base URL not passed on: %q / %q", cfg.Script.OpenAIBaseURL, cfg.Audio.OpenAIBaseURL)
	}
	if cfg.Script.GeminiBaseURL != "http://localhost:8081/" {
		t.Errorf("GeminiBaseURL = %q", cfg.Script.GeminiBaseURL)
	}
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q, want info", got)
	}
}

func TestChannelID(t *testing.T) {
	resetViper(t)
	if got := ChannelID(); got != DefaultChannelID {
		t.Errorf("ChannelID() = %q", got)
	}
	viper.Set("telegram.channel_id", "@mine")
	if got := ChannelID(); got != "@mine" {
		t.Errorf("ChannelID() = %q, want @mine", got)
	}
}
