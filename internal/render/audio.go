package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storyreel/internal/logging"
	"storyreel/internal/media/wav"
	"storyreel/internal/services"
	"storyreel/internal/timeline"
)

// Segment is one stretch of the assembled narration track: either an
// existing audio file or a run of silence.
type Segment struct {
	// Path is the audio file to include. Empty means silence.
	Path string
	// GapSeconds is the silence length when Path is empty.
	GapSeconds float64
}

// SegmentsFromMerge converts a merge run into the segment list whose
// concatenation lines up with the merged subtitle timeline. Units whose
// audio was unusable become silence of the same synthetic gap the merge
// advanced by; units with audio but unusable subtitles still contribute
// their real sound.
func SegmentsFromMerge(units []timeline.Unit, reports []timeline.UnitReport, gapSeconds float64) []Segment {
	if gapSeconds <= 0 {
		gapSeconds = timeline.DefaultGapSeconds
	}
	segments := make([]Segment, 0, len(units))
	for i, unit := range units {
		if i < len(reports) && reports[i].Duration <= 0 {
			segments = append(segments, Segment{GapSeconds: gapSeconds})
			continue
		}
		segments = append(segments, Segment{Path: unit.AudioPath})
	}
	return segments
}

// AssembleAudio concatenates the segments into one WAV at outputPath using
// the ffmpeg concat demuxer. Silence parts are generated in the same PCM
// format as the first real segment so no resampling boundary is hit.
func (s *Service) AssembleAudio(ctx context.Context, segments []Segment, outputPath string) error {
	format, err := referenceFormat(segments)
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "assemble audio", "no usable audio segments", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return services.Wrap(services.ErrTransient, stageName, "assemble audio", "create output directory", err)
	}

	workDir, err := os.MkdirTemp(filepath.Dir(outputPath), "concat-*")
	if err != nil {
		return services.Wrap(services.ErrTransient, stageName, "assemble audio", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	listPath, err := writeConcatParts(workDir, segments, format)
	if err != nil {
		return services.Wrap(services.ErrTransient, stageName, "assemble audio", "write concat parts", err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-ac", fmt.Sprintf("%d", format.Channels),
		"-ar", fmt.Sprintf("%d", format.SampleRate),
		"-c:a", "pcm_s16le",
		outputPath,
	}
	s.logger.Info("assembling narration track",
		logging.Int("segments", len(segments)),
		logging.String("output", outputPath))
	if err := s.run(ctx, s.cfg.FFmpegBinary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "assemble audio", "ffmpeg concat failed", err)
	}
	return nil
}

// referenceFormat inspects the first real segment to decide the PCM
// parameters for generated silence.
func referenceFormat(segments []Segment) (wav.Format, error) {
	for _, segment := range segments {
		if segment.Path == "" {
			continue
		}
		format, err := wav.Inspect(segment.Path)
		if err != nil {
			return wav.Format{}, err
		}
		return format, nil
	}
	return wav.Format{}, fmt.Errorf("every segment is silence")
}

// writeConcatParts materializes silence WAVs for gap segments and writes
// the concat demuxer list file referencing every part in order.
func writeConcatParts(workDir string, segments []Segment, format wav.Format) (string, error) {
	var list strings.Builder
	for i, segment := range segments {
		path := segment.Path
		if path == "" {
			silencePath := filepath.Join(workDir, fmt.Sprintf("silence_%03d.wav", i))
			if err := writeSilence(silencePath, format, segment.GapSeconds); err != nil {
				return "", err
			}
			path = silencePath
		}
		absolute, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve segment path: %w", err)
		}
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(absolute, "'", `'\''`))
	}
	listPath := filepath.Join(workDir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return "", fmt.Errorf("write concat list: %w", err)
	}
	return listPath, nil
}

// writeSilence emits a PCM WAV of zero samples in the given format.
func writeSilence(path string, format wav.Format, seconds float64) error {
	if seconds <= 0 {
		seconds = timeline.DefaultGapSeconds
	}
	bytesPerSecond := format.SampleRate * format.Channels * format.BitsPerSample / 8
	dataSize := int(float64(bytesPerSecond) * seconds)
	// Keep sample frames whole.
	blockAlign := format.Channels * format.BitsPerSample / 8
	if blockAlign > 0 {
		dataSize -= dataSize % blockAlign
	}
	payload := append(wav.EncodeHeader(format, dataSize), make([]byte, dataSize)...)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write silence: %w", err)
	}
	return nil
}
