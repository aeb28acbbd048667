package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"storyreel/internal/logging"
	"storyreel/internal/media/wav"
	"storyreel/internal/services"
	"storyreel/internal/services/gemini"
	"storyreel/internal/textutil"
)

const stageName = "synthesizing"

// Synthesizer is the Gemini surface the service depends on.
type Synthesizer interface {
	Synthesize(ctx context.Context, req gemini.SpeechRequest) ([]gemini.AudioChunk, error)
}

// Config captures runtime settings for narration synthesis.
type Config struct {
	Model       string
	Voice       string
	Instruction string
}

// Service turns chapter text files into narration WAV files.
type Service struct {
	client Synthesizer
	cfg    Config
	logger *slog.Logger
}

// NewService creates a synthesis service.
func NewService(client Synthesizer, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "tts"),
	}
}

// Result describes one synthesized chapter.
type Result struct {
	Name      string
	TextPath  string
	AudioPath string
	Skipped   bool
}

// SynthesizeFile reads a chapter text and writes one PCM WAV narration file.
// Streamed fragments share a sample layout; the header is derived from the
// first fragment's MIME type.
func (s *Service) SynthesizeFile(ctx context.Context, textPath, outputPath string) error {
	text, err := os.ReadFile(textPath)
	if err != nil {
		return services.Wrap(services.ErrNotFound, stageName, "read text", textPath, err)
	}
	if len(strings.TrimSpace(string(text))) == 0 {
		return services.Wrap(services.ErrValidation, stageName, "read text", "chapter text is empty", nil)
	}

	chunks, err := s.client.Synthesize(ctx, gemini.SpeechRequest{
		Model:       s.cfg.Model,
		Voice:       s.cfg.Voice,
		Instruction: s.cfg.Instruction,
		Text:        text,
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "generate audio", filepath.Base(textPath), err)
	}

	var pcm []byte
	for _, chunk := range chunks {
		pcm = append(pcm, chunk.Data...)
	}
	format := ParseAudioMIME(chunks[0].MIMEType)

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrTransient, stageName, "ensure output dir", dir, err)
		}
	}

	header := wav.EncodeHeader(wav.Format{
		Channels:      1,
		SampleRate:    format.SampleRate,
		BitsPerSample: format.BitsPerSample,
	}, len(pcm))
	if err := os.WriteFile(outputPath, append(header, pcm...), 0o644); err != nil {
		return services.Wrap(services.ErrTransient, stageName, "write audio", outputPath, err)
	}

	s.logger.Info("narration synthesized",
		logging.String("text", filepath.Base(textPath)),
		logging.String("audio", filepath.Base(outputPath)),
		logging.Int("fragments", len(chunks)),
		logging.Int("sample_rate", format.SampleRate))
	return nil
}

// SynthesizeDir synthesizes every chapter text in textDir that has no
// narration in audioDir yet. Chapters are processed in natural order.
func (s *Service) SynthesizeDir(ctx context.Context, textDir, audioDir string) ([]Result, error) {
	entries, err := os.ReadDir(textDir)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, stageName, "read text dir", textDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	textutil.SortNatural(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		result := Result{
			Name:      base,
			TextPath:  filepath.Join(textDir, name),
			AudioPath: filepath.Join(audioDir, base+".wav"),
		}
		if _, err := os.Stat(result.AudioPath); err == nil {
			result.Skipped = true
			s.logger.Debug("narration exists, skipping", logging.String("chapter", base))
			results = append(results, result)
			continue
		}
		if err := s.SynthesizeFile(ctx, result.TextPath, result.AudioPath); err != nil {
			return results, fmt.Errorf("synthesize %s: %w", base, err)
		}
		results = append(results, result)
	}
	return results, nil
}
