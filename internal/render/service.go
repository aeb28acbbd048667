package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"storyreel/internal/logging"
	"storyreel/internal/services"
)

const stageName = "rendering"

// Defaults applied when the corresponding Config field is zero.
const (
	DefaultWidth       = 1920
	DefaultHeight      = 1080
	DefaultFontSize    = 48
	DefaultFadeSeconds = 0.5
)

// Config captures the compositing settings for a render run.
type Config struct {
	// FFmpegBinary is the ffmpeg executable to invoke.
	FFmpegBinary string
	// ImagePath is the static background image looped for the whole video.
	ImagePath string
	// Width and Height set the output frame size.
	Width  int
	Height int
	// FontSize is the burned-subtitle font size.
	FontSize int
	// FadeSeconds is the length of the fade in and fade out. Negative
	// disables fades; zero uses the default.
	FadeSeconds float64
}

func (c Config) normalized() Config {
	if c.FFmpegBinary == "" {
		c.FFmpegBinary = "ffmpeg"
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.FadeSeconds == 0 {
		c.FadeSeconds = DefaultFadeSeconds
	}
	return c
}

// Service runs ffmpeg to assemble audio and composite the final video.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a render service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg.normalized(),
		logger: logging.NewComponentLogger(logger, "render"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Request names the inputs and output of one compositing run.
type Request struct {
	// AudioPath is the continuous narration track.
	AudioPath string
	// SubtitlePath is the merged subtitle file to burn in. Empty skips
	// subtitle burning.
	SubtitlePath string
	// DurationSeconds is the total timeline length, used to place the
	// fade out. Zero disables fades.
	DurationSeconds float64
	// OutputPath is the video file to write.
	OutputPath string
}

// RenderVideo loops the background image over the audio track, burns the
// subtitles, and writes an H.264 MP4.
func (s *Service) RenderVideo(ctx context.Context, req Request) error {
	if s.cfg.ImagePath == "" {
		return services.Wrap(services.ErrConfiguration, stageName, "render video", "background image not configured", nil)
	}
	if _, err := os.Stat(s.cfg.ImagePath); err != nil {
		return services.Wrap(services.ErrConfiguration, stageName, "render video", "background image unavailable", err)
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		return services.Wrap(services.ErrNotFound, stageName, "render video", "audio track unavailable", err)
	}
	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0o755); err != nil {
		return services.Wrap(services.ErrTransient, stageName, "render video", "create output directory", err)
	}

	args := s.buildVideoArgs(req)
	s.logger.Info("compositing video",
		logging.String("audio", req.AudioPath),
		logging.String("subtitles", req.SubtitlePath),
		logging.String("output", req.OutputPath))
	if err := s.run(ctx, s.cfg.FFmpegBinary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, stageName, "render video", "ffmpeg compositing failed", err)
	}
	s.logger.Info("render complete", logging.String("output", req.OutputPath))
	return nil
}

// buildVideoArgs assembles the ffmpeg invocation for one compositing run.
func (s *Service) buildVideoArgs(req Request) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-loop", "1",
		"-i", s.cfg.ImagePath,
		"-i", req.AudioPath,
		"-vf", s.videoFilter(req),
	}
	if filter := s.audioFilter(req); filter != "" {
		args = append(args, "-af", filter)
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-pix_fmt", "yuv420p",
		"-r", "24",
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		req.OutputPath,
	)
	return args
}

func (s *Service) videoFilter(req Request) string {
	filters := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", s.cfg.Width, s.cfg.Height),
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", s.cfg.Width, s.cfg.Height),
	}
	if req.SubtitlePath != "" {
		style := fmt.Sprintf("FontSize=%d,PrimaryColour=&H00FFFFFF,OutlineColour=&H00000000,BorderStyle=1,Outline=3", s.cfg.FontSize)
		filters = append(filters, fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterPath(req.SubtitlePath), style))
	}
	if fade := s.fadeWindow(req); fade > 0 {
		filters = append(filters,
			fmt.Sprintf("fade=t=in:st=0:d=%.2f", s.cfg.FadeSeconds),
			fmt.Sprintf("fade=t=out:st=%.2f:d=%.2f", req.DurationSeconds-s.cfg.FadeSeconds, s.cfg.FadeSeconds))
	}
	return strings.Join(filters, ",")
}

func (s *Service) audioFilter(req Request) string {
	if fade := s.fadeWindow(req); fade > 0 {
		return fmt.Sprintf("afade=t=in:st=0:d=%.2f,afade=t=out:st=%.2f:d=%.2f",
			s.cfg.FadeSeconds, req.DurationSeconds-s.cfg.FadeSeconds, s.cfg.FadeSeconds)
	}
	return ""
}

// fadeWindow returns the usable fade length, or zero when fades are off or
// the timeline is too short to hold them.
func (s *Service) fadeWindow(req Request) float64 {
	if s.cfg.FadeSeconds <= 0 || req.DurationSeconds <= 2*s.cfg.FadeSeconds {
		return 0
	}
	return s.cfg.FadeSeconds
}

// escapeFilterPath quotes a filename for use inside an ffmpeg filter
// expression, where ':' separates options and '\' and quotes are special.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
	)
	return "'" + replacer.Replace(path) + "'"
}
