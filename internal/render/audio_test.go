package render

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/media/wav"
	"storyreel/internal/services"
	"storyreel/internal/timeline"
)

func writeTestWAV(t *testing.T, path string, seconds float64) {
	t.Helper()
	format := wav.Format{Channels: 1, SampleRate: 24000, BitsPerSample: 16}
	dataSize := int(float64(format.SampleRate*format.Channels*format.BitsPerSample/8) * seconds)
	payload := append(wav.EncodeHeader(format, dataSize), make([]byte, dataSize)...)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
}

func TestSegmentsFromMerge(t *testing.T) {
	units := []timeline.Unit{
		{Name: "Chuong 1", AudioPath: "/a/Chuong 1.wav"},
		{Name: "Chuong 2", AudioPath: "/a/Chuong 2.wav"},
		{Name: "Chuong 3", AudioPath: "/a/Chuong 3.wav"},
	}
	reports := []timeline.UnitReport{
		{Name: "Chuong 1", Duration: 30},
		{Name: "Chuong 2", Skipped: true, Reason: "audio duration unavailable"},
		{Name: "Chuong 3", Duration: 45, Skipped: true, Reason: "no subtitle records"},
	}

	segments := SegmentsFromMerge(units, reports, 60)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}
	if segments[0].Path != "/a/Chuong 1.wav" {
		t.Fatalf("expected first segment audio, got %+v", segments[0])
	}
	if segments[1].Path != "" || segments[1].GapSeconds != 60 {
		t.Fatalf("expected silence for unusable audio, got %+v", segments[1])
	}
	// A unit skipped only for its subtitles still contributes its sound.
	if segments[2].Path != "/a/Chuong 3.wav" {
		t.Fatalf("expected third segment audio, got %+v", segments[2])
	}
}

func TestAssembleAudioConcatenatesWithSilence(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "Chuong 1.wav")
	third := filepath.Join(dir, "Chuong 3.wav")
	writeTestWAV(t, first, 2)
	writeTestWAV(t, third, 3)

	segments := []Segment{
		{Path: first},
		{GapSeconds: 60},
		{Path: third},
	}

	svc := newTestService(t, Config{})
	var gotArgs []string
	var listLines []string
	var silenceFormat wav.Format
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		// The concat work directory only survives for the duration of the
		// call, so inspect the parts now.
		listPath := args[indexOf(t, args, "-i")+1]
		data, err := os.ReadFile(listPath)
		if err != nil {
			return err
		}
		listLines = strings.Split(strings.TrimSpace(string(data)), "\n")
		for _, line := range listLines {
			if strings.Contains(line, "silence_") {
				path := strings.TrimSuffix(strings.TrimPrefix(line, "file '"), "'")
				silenceFormat, err = wav.Inspect(path)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})

	output := filepath.Join(dir, "out", "story.wav")
	if err := svc.AssembleAudio(context.Background(), segments, output); err != nil {
		t.Fatalf("AssembleAudio: %v", err)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-f concat -safe 0") {
		t.Fatalf("expected concat demuxer args, got %q", joined)
	}
	if !strings.Contains(joined, "-ar 24000") || !strings.Contains(joined, "-ac 1") {
		t.Fatalf("expected PCM format pinned to the source, got %q", joined)
	}
	if gotArgs[len(gotArgs)-1] != output {
		t.Fatalf("expected output path last, got %q", gotArgs[len(gotArgs)-1])
	}

	if len(listLines) != 3 {
		t.Fatalf("expected 3 list entries, got %v", listLines)
	}
	if !strings.Contains(listLines[0], "Chuong 1.wav") || !strings.Contains(listLines[2], "Chuong 3.wav") {
		t.Fatalf("expected real segments first and last, got %v", listLines)
	}
	if !strings.Contains(listLines[1], "silence_001.wav") {
		t.Fatalf("expected generated silence in the middle, got %v", listLines)
	}
	if math.Abs(silenceFormat.Duration()-60) > 0.001 {
		t.Fatalf("expected 60s of silence, got %.3fs", silenceFormat.Duration())
	}
	if silenceFormat.SampleRate != 24000 || silenceFormat.Channels != 1 {
		t.Fatalf("expected silence in source format, got %+v", silenceFormat)
	}
}

func TestAssembleAudioAllSilence(t *testing.T) {
	svc := newTestService(t, Config{})
	err := svc.AssembleAudio(context.Background(), []Segment{{GapSeconds: 60}}, filepath.Join(t.TempDir(), "out.wav"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func indexOf(t *testing.T, args []string, flag string) int {
	t.Helper()
	for i, arg := range args {
		if arg == flag {
			return i
		}
	}
	t.Fatalf("flag %q not found in %v", flag, args)
	return -1
}
