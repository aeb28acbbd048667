package transcribe

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"storyreel/internal/fileutil"
	"storyreel/internal/logging"
	"storyreel/internal/services"
	"storyreel/internal/services/gemini"
	"storyreel/internal/srt"
)

const stageName = "transcribing"

// Transcriber is the Gemini surface the service depends on.
type Transcriber interface {
	Transcribe(ctx context.Context, req gemini.TranscriptRequest) (string, error)
}

// Config captures runtime settings for transcription.
type Config struct {
	Model string
	// DoneDir receives audio files after successful transcription. Empty
	// disables the move.
	DoneDir string
	Fix     srt.FixOptions
}

// Service transcribes narration audio into repaired SRT files.
type Service struct {
	client Transcriber
	cfg    Config
	logger *slog.Logger
}

// NewService creates a transcription service.
func NewService(client Transcriber, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcribe"),
	}
}

var codeFencePattern = regexp.MustCompile("(?s)```[^\\n]*\\n(.*?)\\n?```")

// CleanTranscript strips code fences, a leading "SRT" label, and carriage
// returns from raw model output.
func CleanTranscript(raw string) string {
	s := strings.TrimSpace(raw)
	if m := codeFencePattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && strings.EqualFold(strings.TrimSpace(lines[0]), "srt") {
		s = strings.Join(lines[1:], "\n")
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}

// TranscribeFile generates, saves, and repairs the SRT for one narration file.
// On success the audio file is retired to the done directory.
func (s *Service) TranscribeFile(ctx context.Context, audioPath, srtPath string) (srt.FixReport, error) {
	raw, err := s.client.Transcribe(ctx, gemini.TranscriptRequest{
		Model:     s.cfg.Model,
		Prompt:    srtPrompt,
		AudioPath: audioPath,
		MIMEType:  "audio/wav",
	})
	if err != nil {
		return srt.FixReport{}, services.Wrap(services.ErrExternalTool, stageName, "generate transcript", filepath.Base(audioPath), err)
	}

	content := CleanTranscript(raw)
	if content == "" {
		return srt.FixReport{}, services.Wrap(services.ErrValidation, stageName, "clean transcript", "model returned no usable text", nil)
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if dir := filepath.Dir(srtPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return srt.FixReport{}, services.Wrap(services.ErrTransient, stageName, "ensure subtitle dir", dir, err)
		}
	}
	if err := os.WriteFile(srtPath, []byte(content), 0o644); err != nil {
		return srt.FixReport{}, services.Wrap(services.ErrTransient, stageName, "write subtitle", srtPath, err)
	}

	if s.cfg.DoneDir != "" {
		donePath := filepath.Join(s.cfg.DoneDir, filepath.Base(audioPath))
		if err := fileutil.MoveFile(audioPath, donePath); err != nil {
			return srt.FixReport{}, services.Wrap(services.ErrTransient, stageName, "retire audio", donePath, err)
		}
		s.logger.Debug("audio retired", logging.String("path", donePath))
	}

	report := srt.ValidateAndFix(srtPath, s.cfg.Fix)
	s.logger.Info("transcript saved",
		logging.String("subtitle", filepath.Base(srtPath)),
		logging.Bool("fixed", report.WasFixed),
		logging.Bool("valid", report.Validation.IsValid),
		logging.Int("records", report.Validation.SubtitleCount))
	return report, nil
}
