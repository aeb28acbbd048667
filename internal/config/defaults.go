package config

const (
	defaultProjectDir        = "~/.local/share/storyreel"
	defaultTextDir           = "~/.local/share/storyreel/texts"
	defaultAudioDir          = "~/.local/share/storyreel/audio"
	defaultSubtitleDir       = "~/.local/share/storyreel/subtitles"
	defaultDoneDir           = "~/.local/share/storyreel/audio/done"
	defaultOutputDir         = "~/.local/share/storyreel/output"
	defaultLogDir            = "~/.local/share/storyreel/logs"
	defaultTTSModel          = "gemini-2.5-flash-preview-tts"
	defaultTranscribeModel   = "gemini-2.5-flash"
	defaultGeminiTimeout     = 600
	defaultVoice             = "Gacrux"
	defaultInstruction       = "Read this novel in a fluent, natural voice with a moderate, soothing pace. Pause naturally at commas and periods. Gently emphasize dialogue and key moments while maintaining a peaceful, warm tone for relaxation."
	defaultMaxLineChars      = 60
	defaultMaxLineWords      = 10
	defaultMaxWorkers        = 5
	defaultBatchDelaySeconds = 90
	defaultGapSeconds        = 60.0
	defaultNotifyTimeout     = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			// Artifact directories stay empty here so normalize() can
			// derive them from the effective project_dir, including one
			// overridden by a config file.
			ProjectDir: defaultProjectDir,
		},
		Gemini: Gemini{
			TTSModel:        defaultTTSModel,
			TranscribeModel: defaultTranscribeModel,
			TimeoutSeconds:  defaultGeminiTimeout,
		},
		TTS: TTS{
			Voice:       defaultVoice,
			Instruction: defaultInstruction,
		},
		Subtitles: Subtitles{
			MaxLineChars:   defaultMaxLineChars,
			MaxLineWords:   defaultMaxLineWords,
			AutoFix:        true,
			BackupOriginal: true,
		},
		Workflow: Workflow{
			MaxWorkers:        defaultMaxWorkers,
			BatchDelaySeconds: defaultBatchDelaySeconds,
			GapSeconds:        defaultGapSeconds,
		},
		Render: Render{
			Enabled: false,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Chapters:       true,
			Merge:          true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
