package transcription

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"storyreel/internal/config"
	"storyreel/internal/logging"
	"storyreel/internal/queue"
	"storyreel/internal/services"
	"storyreel/internal/services/gemini"
	"storyreel/internal/services/transcribe"
	"storyreel/internal/srt"
	"storyreel/internal/stage"
)

// TranscriptService is the narrow slice of the transcription service the
// stage needs.
type TranscriptService interface {
	TranscribeFile(ctx context.Context, audioPath, srtPath string) (srt.FixReport, error)
}

// Transcriber manages the audio-to-subtitles workflow stage.
type Transcriber struct {
	store   *queue.Store
	cfg     *config.Config
	logger  *slog.Logger
	service TranscriptService
}

// NewTranscriber constructs the transcription handler using default dependencies.
func NewTranscriber(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Transcriber {
	var service TranscriptService
	client, err := gemini.New(context.Background(), cfg.Gemini.APIKey)
	if err != nil {
		logger.Warn("transcription client unavailable", logging.Error(err))
	} else {
		service = transcribe.NewService(client, transcribe.Config{
			Model:   cfg.Gemini.TranscribeModel,
			DoneDir: cfg.Paths.DoneDir,
			Fix:     fixOptions(cfg),
		}, logger)
	}
	return NewTranscriberWithService(cfg, store, logger, service)
}

// NewTranscriberWithService allows injecting the transcription service (used in tests).
func NewTranscriberWithService(cfg *config.Config, store *queue.Store, logger *slog.Logger, service TranscriptService) *Transcriber {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "transcriber"))
	}
	return &Transcriber{store: store, cfg: cfg, logger: stageLogger, service: service}
}

func fixOptions(cfg *config.Config) srt.FixOptions {
	return srt.FixOptions{
		AutoFix:        cfg.Subtitles.AutoFix,
		BackupOriginal: cfg.Subtitles.BackupOriginal,
		MaxChars:       cfg.Subtitles.MaxLineChars,
		MaxWords:       cfg.Subtitles.MaxLineWords,
	}
}

func (t *Transcriber) Prepare(ctx context.Context, chapter *queue.Chapter) error {
	logger := logging.WithContext(ctx, t.logger)
	if chapter.ProgressStage == "" {
		chapter.ProgressStage = "Transcribing"
	}
	chapter.ProgressMessage = "Starting transcription"
	chapter.ProgressPercent = 0
	chapter.ErrorMessage = ""
	if _, err := os.Stat(chapter.AudioPath); err != nil {
		return services.Wrap(
			services.ErrValidation, "transcription", "locate narration",
			"Narration audio missing; rerun synthesis", err)
	}
	logger.Info("starting transcription",
		logging.String("chapter", chapter.Name),
		logging.String("audio_path", chapter.AudioPath))
	return nil
}

func (t *Transcriber) Execute(ctx context.Context, chapter *queue.Chapter) error {
	logger := logging.WithContext(ctx, t.logger)
	if t.service == nil {
		return services.Wrap(
			services.ErrConfiguration, "transcription", "transcript service",
			"Transcription service unavailable; set GOOGLE_API_KEY or gemini.api_key", nil)
	}

	srtPath := filepath.Join(t.cfg.Paths.SubtitleDir, chapter.Name+".srt")
	report, err := t.service.TranscribeFile(ctx, chapter.AudioPath, srtPath)
	if err != nil {
		return err
	}

	chapter.SubtitlePath = srtPath
	if t.cfg.Paths.DoneDir != "" {
		retired := filepath.Join(t.cfg.Paths.DoneDir, filepath.Base(chapter.AudioPath))
		if _, statErr := os.Stat(retired); statErr == nil {
			chapter.AudioPath = retired
		}
	}

	if !report.Validation.IsValid {
		reason := "subtitle validation failed"
		if len(report.Validation.Errors) > 0 {
			reason = fmt.Sprintf("subtitle validation failed: %s", strings.Join(report.Validation.Errors, "; "))
		}
		chapter.SetReview(reason)
		logger.Warn("transcript needs manual review",
			logging.String("subtitle_path", srtPath),
			logging.String("reason", reason))
		return nil
	}

	message := "Subtitles ready"
	if report.WasFixed {
		message = "Subtitles repaired and ready"
	}
	chapter.SetProgress("Transcribed", message, 100)
	logger.Info("transcription completed",
		logging.String("subtitle_path", srtPath),
		logging.Bool("fixed", report.WasFixed),
		logging.Int("records", report.Validation.SubtitleCount))
	return nil
}

// HealthCheck verifies transcription dependencies.
func (t *Transcriber) HealthCheck(ctx context.Context) stage.Health {
	const name = "transcriber"
	if t.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if strings.TrimSpace(t.cfg.Gemini.APIKey) == "" {
		return stage.Unhealthy(name, "api key not configured")
	}
	if strings.TrimSpace(t.cfg.Paths.SubtitleDir) == "" {
		return stage.Unhealthy(name, "subtitle directory not configured")
	}
	if t.service == nil {
		return stage.Unhealthy(name, "transcription service unavailable")
	}
	return stage.Healthy(name)
}
