package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	AudioFile  string
	ArchiveDir string
	LogLevel   string
	KeepAudio  bool

	// Stage selection
	ScriptProvider string
	AudioProvider  string
	AudioFallback  string
	Voice          string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AudioFile:      "podcast_audio.wav",
		LogLevel:       "info",
		ScriptProvider: "openai",
		AudioProvider:  "replicate",
		Voice:          "Deep_Voice_Man",
	}
}
