package synthesis

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"storyreel/internal/config"
	"storyreel/internal/logging"
	"storyreel/internal/media/wav"
	"storyreel/internal/queue"
	"storyreel/internal/services"
	"storyreel/internal/services/gemini"
	"storyreel/internal/services/tts"
	"storyreel/internal/stage"
)

// SpeechService is the narrow slice of the speech service the stage needs.
type SpeechService interface {
	SynthesizeFile(ctx context.Context, textPath, outputPath string) error
}

// Synthesizer manages the text-to-narration workflow stage.
type Synthesizer struct {
	store   *queue.Store
	cfg     *config.Config
	logger  *slog.Logger
	service SpeechService
}

// NewSynthesizer constructs the synthesis handler using default dependencies.
func NewSynthesizer(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Synthesizer {
	var service SpeechService
	client, err := gemini.New(context.Background(), cfg.Gemini.APIKey)
	if err != nil {
		logger.Warn("speech client unavailable", logging.Error(err))
	} else {
		service = tts.NewService(client, tts.Config{
			Model:       cfg.Gemini.TTSModel,
			Voice:       cfg.TTS.Voice,
			Instruction: cfg.TTS.Instruction,
		}, logger)
	}
	return NewSynthesizerWithService(cfg, store, logger, service)
}

// NewSynthesizerWithService allows injecting the speech service (used in tests).
func NewSynthesizerWithService(cfg *config.Config, store *queue.Store, logger *slog.Logger, service SpeechService) *Synthesizer {
	stageLogger := logger
	if stageLogger != nil {
		stageLogger = stageLogger.With(logging.String("component", "synthesizer"))
	}
	return &Synthesizer{store: store, cfg: cfg, logger: stageLogger, service: service}
}

func (s *Synthesizer) Prepare(ctx context.Context, chapter *queue.Chapter) error {
	logger := logging.WithContext(ctx, s.logger)
	if chapter.ProgressStage == "" {
		chapter.ProgressStage = "Synthesizing"
	}
	chapter.ProgressMessage = "Starting narration"
	chapter.ProgressPercent = 0
	chapter.ErrorMessage = ""
	if _, err := os.Stat(chapter.TextPath); err != nil {
		return services.Wrap(
			services.ErrValidation, "synthesis", "locate chapter text",
			"Chapter text missing; check the text directory", err)
	}
	logger.Info("starting narration",
		logging.String("chapter", chapter.Name),
		logging.String("text_path", chapter.TextPath))
	return nil
}

func (s *Synthesizer) Execute(ctx context.Context, chapter *queue.Chapter) error {
	logger := logging.WithContext(ctx, s.logger)
	if s.service == nil {
		return services.Wrap(
			services.ErrConfiguration, "synthesis", "speech service",
			"Speech service unavailable; set GOOGLE_API_KEY or gemini.api_key", nil)
	}

	audioPath := filepath.Join(s.cfg.Paths.AudioDir, chapter.Name+".wav")
	if _, err := os.Stat(audioPath); err == nil {
		logger.Info("narration exists, skipping synthesis", logging.String("audio_path", audioPath))
	} else {
		if err := s.service.SynthesizeFile(ctx, chapter.TextPath, audioPath); err != nil {
			return err
		}
	}

	chapter.AudioPath = audioPath
	if seconds, err := wav.DurationSeconds(audioPath); err == nil {
		chapter.DurationSeconds = seconds
	} else {
		logger.Warn("could not read narration duration", logging.Error(err))
	}
	chapter.SetProgress("Synthesized", "Narration ready", 100)
	logger.Info("narration completed",
		logging.String("audio_path", audioPath),
		logging.Float64("duration_seconds", chapter.DurationSeconds))
	return nil
}

// HealthCheck verifies speech synthesis dependencies.
func (s *Synthesizer) HealthCheck(ctx context.Context) stage.Health {
	const name = "synthesizer"
	if s.cfg == nil {
		return stage.Unhealthy(name, "configuration unavailable")
	}
	if strings.TrimSpace(s.cfg.Gemini.APIKey) == "" {
		return stage.Unhealthy(name, "api key not configured")
	}
	if strings.TrimSpace(s.cfg.Paths.AudioDir) == "" {
		return stage.Unhealthy(name, "audio directory not configured")
	}
	if s.service == nil {
		return stage.Unhealthy(name, "speech service unavailable")
	}
	return stage.Healthy(name)
}
