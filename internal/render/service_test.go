package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/logging"
	"storyreel/internal/services"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	return NewService(cfg, logging.NewNop())
}

func TestBuildVideoArgsBurnsSubtitles(t *testing.T) {
	svc := newTestService(t, Config{ImagePath: "/tmp/bg.png"})
	args := svc.buildVideoArgs(Request{
		AudioPath:       "/tmp/story.wav",
		SubtitlePath:    "/tmp/Chuong 1 - Chuong 3.srt",
		DurationSeconds: 120,
		OutputPath:      "/tmp/story.mp4",
	})

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-loop 1 -i /tmp/bg.png") {
		t.Fatalf("expected looped image input, got %q", joined)
	}
	if !strings.Contains(joined, `subtitles='/tmp/Chuong 1 - Chuong 3.srt'`) {
		t.Fatalf("expected subtitles filter, got %q", joined)
	}
	if !strings.Contains(joined, "FontSize=48") {
		t.Fatalf("expected default font size in style, got %q", joined)
	}
	if !strings.Contains(joined, "fade=t=out:st=119.50:d=0.50") {
		t.Fatalf("expected fade out near end, got %q", joined)
	}
	if !strings.Contains(joined, "scale=1920:1080") {
		t.Fatalf("expected default frame size, got %q", joined)
	}
	if args[len(args)-1] != "/tmp/story.mp4" {
		t.Fatalf("expected output path last, got %q", args[len(args)-1])
	}
}

func TestBuildVideoArgsWithoutSubtitlesOrFades(t *testing.T) {
	svc := newTestService(t, Config{ImagePath: "/tmp/bg.png", FadeSeconds: -1})
	args := svc.buildVideoArgs(Request{
		AudioPath:  "/tmp/story.wav",
		OutputPath: "/tmp/story.mp4",
	})

	joined := strings.Join(args, " ")
	if strings.Contains(joined, "subtitles=") {
		t.Fatalf("expected no subtitles filter, got %q", joined)
	}
	if strings.Contains(joined, "fade=") || strings.Contains(joined, "-af") {
		t.Fatalf("expected no fades, got %q", joined)
	}
}

func TestRenderVideoRunsFFmpeg(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "bg.png")
	audio := filepath.Join(dir, "story.wav")
	for _, path := range []string{image, audio} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	svc := newTestService(t, Config{FFmpegBinary: "ffmpeg-test", ImagePath: image})
	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	output := filepath.Join(dir, "out", "story.mp4")
	err := svc.RenderVideo(context.Background(), Request{
		AudioPath:  audio,
		OutputPath: output,
	})
	if err != nil {
		t.Fatalf("RenderVideo: %v", err)
	}
	if gotName != "ffmpeg-test" {
		t.Fatalf("expected configured binary, got %q", gotName)
	}
	if gotArgs[len(gotArgs)-1] != output {
		t.Fatalf("expected output path last, got %q", gotArgs[len(gotArgs)-1])
	}
	if _, err := os.Stat(filepath.Dir(output)); err != nil {
		t.Fatalf("expected output directory created: %v", err)
	}
}

func TestRenderVideoMissingImage(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "story.wav")
	if err := os.WriteFile(audio, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := newTestService(t, Config{ImagePath: filepath.Join(dir, "missing.png")})
	err := svc.RenderVideo(context.Background(), Request{AudioPath: audio, OutputPath: filepath.Join(dir, "out.mp4")})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRenderVideoToolFailure(t *testing.T) {
	dir := t.TempDir()
	image := filepath.Join(dir, "bg.png")
	audio := filepath.Join(dir, "story.wav")
	for _, path := range []string{image, audio} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	svc := newTestService(t, Config{ImagePath: image})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("boom")
	})
	err := svc.RenderVideo(context.Background(), Request{AudioPath: audio, OutputPath: filepath.Join(dir, "out.mp4")})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/plain/path.srt", "'/plain/path.srt'"},
		{"/with:colon.srt", `'/with\:colon.srt'`},
		{"/it's.srt", `'/it\'s.srt'`},
	}
	for _, tc := range cases {
		if got := escapeFilterPath(tc.in); got != tc.want {
			t.Fatalf("escapeFilterPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
