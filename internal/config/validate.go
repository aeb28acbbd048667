package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGemini(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGemini() error {
	if c.Gemini.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/storyreel/config.toml"
		}
		return fmt.Errorf("gemini.api_key is required. Set GOOGLE_API_KEY env var or edit %s (create with 'storyreel config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxLineChars < 10 {
		return errors.New("subtitles.max_line_chars must be at least 10")
	}
	if c.Subtitles.MaxLineWords < 1 {
		return errors.New("subtitles.max_line_words must be at least 1")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.MaxWorkers < 1 || c.Workflow.MaxWorkers > 64 {
		return errors.New("workflow.max_workers must be between 1 and 64")
	}
	if c.Workflow.GapSeconds <= 0 {
		return errors.New("workflow.gap_seconds must be positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if !c.Render.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Render.ImagePath) == "" {
		return errors.New("render.image_path must be set when rendering is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
