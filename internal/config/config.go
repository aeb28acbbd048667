package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for pipeline artifacts.
type Paths struct {
	ProjectDir  string `toml:"project_dir"`
	TextDir     string `toml:"text_dir"`
	AudioDir    string `toml:"audio_dir"`
	SubtitleDir string `toml:"subtitle_dir"`
	DoneDir     string `toml:"done_dir"`
	OutputDir   string `toml:"output_dir"`
	LogDir      string `toml:"log_dir"`
}

// Gemini contains connection settings for the Gemini API.
type Gemini struct {
	APIKey          string `toml:"api_key"`
	TTSModel        string `toml:"tts_model"`
	TranscribeModel string `toml:"transcribe_model"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// TTS contains narration synthesis settings.
type TTS struct {
	Voice       string `toml:"voice"`
	Instruction string `toml:"instruction"`
}

// Subtitles contains validation and repair settings for generated SRT files.
type Subtitles struct {
	MaxLineChars   int  `toml:"max_line_chars"`
	MaxLineWords   int  `toml:"max_line_words"`
	AutoFix        bool `toml:"auto_fix"`
	BackupOriginal bool `toml:"backup_original"`
}

// Workflow contains pipeline concurrency and pacing settings.
type Workflow struct {
	MaxWorkers        int     `toml:"max_workers"`
	BatchDelaySeconds int     `toml:"batch_delay_seconds"`
	GapSeconds        float64 `toml:"gap_seconds"`
}

// Render contains video compositing settings.
type Render struct {
	Enabled       bool    `toml:"enabled"`
	ImagePath     string  `toml:"image_path"`
	FFmpegBinary  string  `toml:"ffmpeg_binary"`
	FFprobeBinary string  `toml:"ffprobe_binary"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	FontSize      int     `toml:"font_size"`
	FadeSeconds   float64 `toml:"fade_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Chapters       bool   `toml:"chapters"`
	Merge          bool   `toml:"merge"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for storyreel.
//
// Configuration sections by subsystem:
//   - Paths: chapter text, audio, subtitle, and output directories
//   - Gemini: API credentials and model selection
//   - TTS: narration voice and delivery instruction
//   - Subtitles: line budgets and auto-repair behaviour
//   - Workflow: worker counts and batch pacing
//   - Render: ffmpeg compositing settings
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Gemini        Gemini        `toml:"gemini"`
	TTS           TTS           `toml:"tts"`
	Subtitles     Subtitles     `toml:"subtitles"`
	Workflow      Workflow      `toml:"workflow"`
	Render        Render        `toml:"render"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/storyreel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/storyreel/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("storyreel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for pipeline operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.Paths.TextDir,
		c.Paths.AudioDir,
		c.Paths.SubtitleDir,
		c.Paths.DoneDir,
		c.Paths.OutputDir,
		c.Paths.LogDir,
	} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for compositing.
func (c *Config) FFmpegBinary() string {
	if strings.TrimSpace(c.Render.FFmpegBinary) != "" {
		return c.Render.FFmpegBinary
	}
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	if strings.TrimSpace(c.Render.FFprobeBinary) != "" {
		return c.Render.FFprobeBinary
	}
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
