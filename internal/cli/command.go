package cli

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/newscast/internal"
	"codeberg.org/snonux/newscast/internal/logging"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newscast [newsletter-url] [channel-id]",
		Short: "Newsletter to podcast publisher",
		Long: `newscast turns the latest post of a Substack newsletter into a short
podcast episode and publishes it to a Telegram channel.

It fetches the newest post (falling back through several retrieval
strategies), rewrites it as a spoken script with a language model,
narrates it with a text-to-speech service and uploads the audio.

Examples:
  newscast                                        # Default newsletter and channel
  newscast https://example.substack.com           # Another newsletter
  newscast https://example.substack.com @mychan   # Another newsletter and channel
  newscast --audio-provider openai                # Narrate with OpenAI TTS`,
		Args:          cobra.MaximumNArgs(2),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	setupFlags(rootCmd, flags)

	// Channel IDs like -1001234 follow the URL and must not parse as flags;
	// LoadConfig rejects real flags that land in the channel position
	rootCmd.Flags().SetInterspersed(false)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.newscast.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")

	// Local flags
	cmd.Flags().StringVarP(&flags.AudioFile, "output", "o", flags.AudioFile, "Audio file written before upload")
	cmd.Flags().BoolVar(&flags.KeepAudio, "keep-audio", false, "Keep the audio file after a successful upload")
	cmd.Flags().StringVar(&flags.ArchiveDir, "archive-dir", "", "Move the audio into this directory after upload instead of deleting it")
	cmd.Flags().StringVar(&flags.ScriptProvider, "script-provider", flags.ScriptProvider, "Script model provider: openai or gemini")
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech provider: replicate, openai or espeak")
	cmd.Flags().StringVar(&flags.AudioFallback, "audio-fallback", "", "Speech provider tried when the primary fails")
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "Replicate voice id")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output.audio_file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.keep_audio", cmd.Flags().Lookup("keep-audio"))
	viper.BindPFlag("output.archive_dir", cmd.Flags().Lookup("archive-dir"))
	viper.BindPFlag("script.provider", cmd.Flags().Lookup("script-provider"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.fallback", cmd.Flags().Lookup("audio-fallback"))
	viper.BindPFlag("audio.voice", cmd.Flags().Lookup("voice"))
}

// InitConfig loads .env, the config file and NEWSCAST_* environment overrides
func InitConfig(cfgFile string) {
	// A missing .env is normal; credentials may come from the real environment
	_ = godotenv.Load()

	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		} else {
			logging.Warn("Cannot determine home directory", "error", err)
		}

		// Search config in home and working directory with name ".newscast" (without extension)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".newscast")
	}

	// Environment variables, e.g. NEWSCAST_TELEGRAM_CHANNEL_ID
	viper.SetEnvPrefix("NEWSCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Info("Using config file", "path", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logging.Warn("Cannot read config file", "path", cfgFile, "error", err)
	}
}
