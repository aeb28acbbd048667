package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeGemini(); err != nil {
		return err
	}
	c.normalizeTTS()
	c.normalizeSubtitles()
	c.normalizeWorkflow()
	if err := c.normalizeRender(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ProjectDir, err = expandPath(c.Paths.ProjectDir); err != nil {
		return fmt.Errorf("paths.project_dir: %w", err)
	}

	// Unset artifact directories hang off the project directory.
	if strings.TrimSpace(c.Paths.TextDir) == "" {
		c.Paths.TextDir = filepath.Join(c.Paths.ProjectDir, "texts")
	}
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		c.Paths.AudioDir = filepath.Join(c.Paths.ProjectDir, "audio")
	}
	if strings.TrimSpace(c.Paths.SubtitleDir) == "" {
		c.Paths.SubtitleDir = filepath.Join(c.Paths.ProjectDir, "subtitles")
	}
	if strings.TrimSpace(c.Paths.DoneDir) == "" {
		c.Paths.DoneDir = filepath.Join(c.Paths.AudioDir, "done")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = filepath.Join(c.Paths.ProjectDir, "output")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.ProjectDir, "logs")
	}

	if c.Paths.TextDir, err = expandPath(c.Paths.TextDir); err != nil {
		return fmt.Errorf("paths.text_dir: %w", err)
	}
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if c.Paths.SubtitleDir, err = expandPath(c.Paths.SubtitleDir); err != nil {
		return fmt.Errorf("paths.subtitle_dir: %w", err)
	}
	if c.Paths.DoneDir, err = expandPath(c.Paths.DoneDir); err != nil {
		return fmt.Errorf("paths.done_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGemini() error {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Gemini.APIKey == "" {
		if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
			c.Gemini.APIKey = strings.TrimSpace(value)
		}
	}
	c.Gemini.TTSModel = strings.TrimSpace(c.Gemini.TTSModel)
	if c.Gemini.TTSModel == "" {
		c.Gemini.TTSModel = defaultTTSModel
	}
	c.Gemini.TranscribeModel = strings.TrimSpace(c.Gemini.TranscribeModel)
	if c.Gemini.TranscribeModel == "" {
		c.Gemini.TranscribeModel = defaultTranscribeModel
	}
	if c.Gemini.TimeoutSeconds <= 0 {
		c.Gemini.TimeoutSeconds = defaultGeminiTimeout
	}
	return nil
}

func (c *Config) normalizeTTS() {
	c.TTS.Voice = strings.TrimSpace(c.TTS.Voice)
	if c.TTS.Voice == "" {
		c.TTS.Voice = defaultVoice
	}
	if strings.TrimSpace(c.TTS.Instruction) == "" {
		c.TTS.Instruction = defaultInstruction
	}
}

func (c *Config) normalizeSubtitles() {
	if c.Subtitles.MaxLineChars <= 0 {
		c.Subtitles.MaxLineChars = defaultMaxLineChars
	}
	if c.Subtitles.MaxLineWords <= 0 {
		c.Subtitles.MaxLineWords = defaultMaxLineWords
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.MaxWorkers <= 0 {
		c.Workflow.MaxWorkers = defaultMaxWorkers
	}
	if c.Workflow.BatchDelaySeconds < 0 {
		c.Workflow.BatchDelaySeconds = defaultBatchDelaySeconds
	}
	if c.Workflow.GapSeconds <= 0 {
		c.Workflow.GapSeconds = defaultGapSeconds
	}
}

func (c *Config) normalizeRender() error {
	c.Render.ImagePath = strings.TrimSpace(c.Render.ImagePath)
	if c.Render.ImagePath != "" {
		expanded, err := expandPath(c.Render.ImagePath)
		if err != nil {
			return fmt.Errorf("render.image_path: %w", err)
		}
		c.Render.ImagePath = expanded
	}
	c.Render.FFmpegBinary = strings.TrimSpace(c.Render.FFmpegBinary)
	c.Render.FFprobeBinary = strings.TrimSpace(c.Render.FFprobeBinary)
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
