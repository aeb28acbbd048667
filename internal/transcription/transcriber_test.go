package transcription

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"storyreel/internal/fileutil"
	"storyreel/internal/logging"
	"storyreel/internal/queue"
	"storyreel/internal/services"
	"storyreel/internal/srt"
	"storyreel/internal/testsupport"
)

type fakeTranscript struct {
	report  srt.FixReport
	err     error
	doneDir string
	calls   []string
}

func (f *fakeTranscript) TranscribeFile(ctx context.Context, audioPath, srtPath string) (srt.FixReport, error) {
	f.calls = append(f.calls, audioPath)
	if f.err != nil {
		return srt.FixReport{}, f.err
	}
	payload := "1\n00:00:00,000 --> 00:00:02,000\nXin chào\n\n"
	if err := os.WriteFile(srtPath, []byte(payload), 0o644); err != nil {
		return srt.FixReport{}, err
	}
	if f.doneDir != "" {
		if err := fileutil.MoveFile(audioPath, filepath.Join(f.doneDir, filepath.Base(audioPath))); err != nil {
			return srt.FixReport{}, err
		}
	}
	f.report.Path = srtPath
	return f.report, nil
}

func TestTranscriberExecute(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := &fakeTranscript{
		report:  srt.FixReport{Validation: srt.ValidationResult{IsValid: true, SubtitleCount: 1}},
		doneDir: cfg.Paths.DoneDir,
	}
	handler := NewTranscriberWithService(cfg, nil, logging.NewNop(), fake)

	audioPath := filepath.Join(cfg.Paths.AudioDir, "Chuong 1.wav")
	testsupport.WriteWAV(t, audioPath, 2)
	chapter := &queue.Chapter{Name: "Chuong 1", AudioPath: audioPath}

	if err := handler.Prepare(context.Background(), chapter); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := handler.Execute(context.Background(), chapter); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	wantSRT := filepath.Join(cfg.Paths.SubtitleDir, "Chuong 1.srt")
	if chapter.SubtitlePath != wantSRT {
		t.Fatalf("unexpected subtitle path: %q", chapter.SubtitlePath)
	}
	wantAudio := filepath.Join(cfg.Paths.DoneDir, "Chuong 1.wav")
	if chapter.AudioPath != wantAudio {
		t.Fatalf("expected audio path to follow the retired file, got %q", chapter.AudioPath)
	}
	if chapter.NeedsReview {
		t.Fatalf("did not expect review flag: %q", chapter.ReviewReason)
	}
	if chapter.ProgressPercent != 100 {
		t.Fatalf("expected progress 100, got %.0f", chapter.ProgressPercent)
	}
}

func TestTranscriberFlagsInvalidSubtitles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := &fakeTranscript{
		report: srt.FixReport{
			WasFixed:   true,
			Validation: srt.ValidationResult{IsValid: false, Errors: []string{"invalid timing format"}},
		},
	}
	handler := NewTranscriberWithService(cfg, nil, logging.NewNop(), fake)

	audioPath := filepath.Join(cfg.Paths.AudioDir, "Chuong 2.wav")
	testsupport.WriteWAV(t, audioPath, 2)
	chapter := &queue.Chapter{Name: "Chuong 2", AudioPath: audioPath}

	if err := handler.Execute(context.Background(), chapter); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !chapter.NeedsReview {
		t.Fatal("expected review flag")
	}
	if chapter.Status != queue.StatusReview {
		t.Fatalf("expected review status, got %q", chapter.Status)
	}
	if chapter.ReviewReason == "" {
		t.Fatalf("expected review reason, got %q", chapter.ReviewReason)
	}
}

func TestTranscriberPrepareMissingAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	handler := NewTranscriberWithService(cfg, nil, logging.NewNop(), &fakeTranscript{})
	chapter := &queue.Chapter{Name: "Chuong 3", AudioPath: filepath.Join(cfg.Paths.AudioDir, "missing.wav")}
	if err := handler.Prepare(context.Background(), chapter); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTranscriberExecuteServiceFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := &fakeTranscript{err: services.Wrap(services.ErrExternalTool, "transcribing", "generate transcript", "upload failed", nil)}
	handler := NewTranscriberWithService(cfg, nil, logging.NewNop(), fake)

	audioPath := filepath.Join(cfg.Paths.AudioDir, "Chuong 4.wav")
	testsupport.WriteWAV(t, audioPath, 2)
	chapter := &queue.Chapter{Name: "Chuong 4", AudioPath: audioPath}
	if err := handler.Execute(context.Background(), chapter); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
