package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/config"
)

func TestLoadDefaultConfigUsesEnvKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("GEMINI_API_KEY", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantProject := filepath.Join(tempHome, ".local", "share", "storyreel")
	if cfg.Paths.ProjectDir != wantProject {
		t.Fatalf("unexpected project dir: got %q want %q", cfg.Paths.ProjectDir, wantProject)
	}
	if cfg.Paths.TextDir != filepath.Join(wantProject, "texts") {
		t.Fatalf("unexpected text dir: %q", cfg.Paths.TextDir)
	}
	if cfg.Paths.DoneDir != filepath.Join(wantProject, "audio", "done") {
		t.Fatalf("unexpected done dir: %q", cfg.Paths.DoneDir)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Fatalf("expected API key from env, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.TTSModel != "gemini-2.5-flash-preview-tts" {
		t.Fatalf("unexpected tts model: %q", cfg.Gemini.TTSModel)
	}
	if cfg.TTS.Voice != "Gacrux" {
		t.Fatalf("unexpected voice: %q", cfg.TTS.Voice)
	}
	if cfg.Subtitles.MaxLineChars != 60 || cfg.Subtitles.MaxLineWords != 10 {
		t.Fatalf("unexpected subtitle budgets: %d/%d", cfg.Subtitles.MaxLineChars, cfg.Subtitles.MaxLineWords)
	}
	if !cfg.Subtitles.AutoFix || !cfg.Subtitles.BackupOriginal {
		t.Fatal("expected auto fix and backups enabled by default")
	}
	if cfg.Workflow.MaxWorkers != 5 {
		t.Fatalf("unexpected max workers: %d", cfg.Workflow.MaxWorkers)
	}
	if cfg.Workflow.BatchDelaySeconds != 90 {
		t.Fatalf("unexpected batch delay: %d", cfg.Workflow.BatchDelaySeconds)
	}
	if cfg.Workflow.GapSeconds != 60 {
		t.Fatalf("unexpected gap seconds: %v", cfg.Workflow.GapSeconds)
	}
	if cfg.Render.Enabled {
		t.Fatal("expected rendering disabled by default")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.TextDir, cfg.Paths.AudioDir, cfg.Paths.SubtitleDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "storyreel.toml")

	content := strings.Join([]string{
		"[paths]",
		`project_dir = "` + filepath.Join(tempDir, "project") + `"`,
		"",
		"[gemini]",
		`api_key = "file-key"`,
		`tts_model = "custom-tts"`,
		"",
		"[tts]",
		`voice = "Kore"`,
		"",
		"[workflow]",
		"max_workers = 2",
		"batch_delay_seconds = 5",
	}, "\n")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("resolved = %q, want %q", resolved, configPath)
	}
	if cfg.Gemini.APIKey != "file-key" {
		t.Fatalf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.TTSModel != "custom-tts" {
		t.Fatalf("tts model = %q", cfg.Gemini.TTSModel)
	}
	if cfg.TTS.Voice != "Kore" {
		t.Fatalf("voice = %q", cfg.TTS.Voice)
	}
	if cfg.Workflow.MaxWorkers != 2 {
		t.Fatalf("max workers = %d", cfg.Workflow.MaxWorkers)
	}
	// Transcribe model keeps its default when the file omits it.
	if cfg.Gemini.TranscribeModel != "gemini-2.5-flash" {
		t.Fatalf("transcribe model = %q", cfg.Gemini.TranscribeModel)
	}
	if cfg.Paths.SubtitleDir != filepath.Join(tempDir, "project", "subtitles") {
		t.Fatalf("subtitle dir = %q", cfg.Paths.SubtitleDir)
	}
}

func TestValidateRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if !strings.Contains(err.Error(), "gemini.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := config.Default()
	cfg.Gemini.APIKey = "k"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log format")
	}
}

func TestValidateRenderRequiresImage(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "k")
	cfg := config.Default()
	cfg.Gemini.APIKey = "k"
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "info"
	cfg.Render.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when render enabled without image")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[gemini]") {
		t.Fatal("expected gemini section in sample")
	}
}
