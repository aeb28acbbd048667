package validation

import (
	"context"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"storyreel/internal/config"
	"storyreel/internal/logging"
	"storyreel/internal/queue"
	"storyreel/internal/services"
	"storyreel/internal/srt"
	"storyreel/internal/stage"
)

// Validator manages the subtitle validation workflow stage.
type Validator struct {
	store  *queue.Store
	cfg    *config.Config
	logger *slog.Logger
}

// NewValidator constructs the validation handler.
func NewValidator(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Validator {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "validator"))
	}
	return &Validator{store: store, cfg: cfg, logger: stageLogger}
}

// Options returns the repair options derived from the subtitle settings.
func (v *Validator) Options() srt.FixOptions {
	return srt.FixOptions{
		AutoFix:        v.cfg.Subtitles.AutoFix,
		BackupOriginal: v.cfg.Subtitles.BackupOriginal,
		MaxChars:       v.cfg.Subtitles.MaxLineChars,
		MaxWords:       v.cfg.Subtitles.MaxLineWords,
	}
}

func (v *Validator) Prepare(ctx context.Context, chapter *queue.Chapter) error {
	logger := logging.WithContext(ctx, v.logger)
	if chapter.ProgressStage == "" {
		chapter.ProgressStage = "Validating"
	}
	chapter.ProgressMessage = "Checking subtitles"
	chapter.ProgressPercent = 0
	chapter.ErrorMessage = ""
	if _, err := os.Stat(chapter.SubtitlePath); err != nil {
		return services.Wrap(
			services.ErrValidation, "validation", "locate subtitles",
			"Subtitle file missing; rerun transcription", err)
	}
	logger.Info("starting subtitle validation",
		logging.String("chapter", chapter.Name),
		logging.String("subtitle_path", chapter.SubtitlePath))
	return nil
}

func (v *Validator) Execute(ctx context.Context, chapter *queue.Chapter) error {
	logger := logging.WithContext(ctx, v.logger)

	report := srt.ValidateAndFix(chapter.SubtitlePath, v.Options())
	if !report.Validation.IsValid {
		reason := "subtitle validation failed"
		if len(report.Validation.Errors) > 0 {
			reason = fmt.Sprintf("subtitle validation failed: %s", strings.Join(report.Validation.Errors, "; "))
		}
		chapter.SetReview(reason)
		logger.Warn("subtitles need manual review",
			logging.String("subtitle_path", chapter.SubtitlePath),
			logging.Int("errors", len(report.Validation.Errors)))
		return nil
	}

	message := fmt.Sprintf("%d subtitles valid", report.Validation.SubtitleCount)
	if report.WasFixed {
		message = fmt.Sprintf("%d subtitles valid after repair", report.Validation.SubtitleCount)
	}
	chapter.SetProgress("Validated", message, 100)
	logger.Info("subtitle validation completed",
		logging.String("subtitle_path", chapter.SubtitlePath),
		logging.Bool("fixed", report.WasFixed),
		logging.Int("records", report.Validation.SubtitleCount))
	return nil
}

// HealthCheck verifies validation dependencies.
func (v *Validator) HealthCheck(ctx context.Context) stage.Health {
	const name = "validator"
	if v.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if strings.TrimSpace(v.cfg.Paths.SubtitleDir) == "" {
		return stage.Unhealthy(name, "subtitle directory not configured")
	}
	if v.cfg.Subtitles.MaxLineChars < 10 {
		return stage.Unhealthy(name, "line budget too small")
	}
	return stage.Healthy(name)
}
