package timeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/media/wav"
)

// writeWAVSeconds writes a real PCM WAV file with the requested duration so
// the default header prober can read it back.
func writeWAVSeconds(t *testing.T, path string, seconds int) {
	t.Helper()
	format := wav.Format{Channels: 1, SampleRate: 8000, BitsPerSample: 16}
	dataSize := 8000 * 2 * seconds
	payload := append(wav.EncodeHeader(format, dataSize), make([]byte, dataSize)...)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

func TestCollectUnitsNaturalOrder(t *testing.T) {
	audioDir := t.TempDir()
	srtDir := t.TempDir()
	for _, name := range []string{"Chương 10.wav", "Chương 2.wav", "Chương 1.wav", "notes.txt"} {
		writeFileT(t, filepath.Join(audioDir, name), "x")
	}

	units, err := CollectUnits(audioDir, srtDir)
	if err != nil {
		t.Fatalf("CollectUnits: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	got := []string{units[0].Name, units[1].Name, units[2].Name}
	want := []string{"Chương 1", "Chương 2", "Chương 10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit order %v, want %v", got, want)
		}
	}
	if units[0].SubtitlePath != filepath.Join(srtDir, "Chương 1.srt") {
		t.Errorf("subtitle pairing wrong: %s", units[0].SubtitlePath)
	}
}

func TestMergeDirsWritesArtifacts(t *testing.T) {
	base := t.TempDir()
	audioDir := filepath.Join(base, "audios")
	srtDir := filepath.Join(base, "subtitles")
	outDir := filepath.Join(base, "merged")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(srtDir, 0o755); err != nil {
		t.Fatal(err)
	}

	writeWAVSeconds(t, filepath.Join(audioDir, "part 1.wav"), 10)
	writeWAVSeconds(t, filepath.Join(audioDir, "part 2.wav"), 5)
	writeFileT(t, filepath.Join(srtDir, "part 1.srt"), unitPayload)
	writeFileT(t, filepath.Join(srtDir, "part 2.srt"), `1
00:00:01,000 --> 00:00:03,000
Part two speech
`)

	result, err := MergeDirs(audioDir, srtDir, outDir, Options{})
	if err != nil {
		t.Fatalf("MergeDirs: %v", err)
	}

	if filepath.Base(result.SubtitlePath) != "part 1 - part 2.srt" {
		t.Errorf("unexpected subtitle artifact name: %s", result.SubtitlePath)
	}
	data, err := os.ReadFile(result.SubtitlePath)
	if err != nil {
		t.Fatalf("read merged srt: %v", err)
	}
	if !strings.Contains(string(data), "00:00:11,000 --> 00:00:13,000") {
		t.Errorf("part 2 record not offset by part 1 duration:\n%s", data)
	}

	marks, err := os.ReadFile(result.MarksPath)
	if err != nil {
		t.Fatalf("read marks: %v", err)
	}
	wantMarks := "00:00:00 part 1\n00:00:11 part 2\n"
	if string(marks) != wantMarks {
		t.Errorf("marks = %q, want %q", string(marks), wantMarks)
	}

	if result.Timeline.TotalDuration < 14.9 || result.Timeline.TotalDuration > 15.1 {
		t.Errorf("total duration = %v, want 15", result.Timeline.TotalDuration)
	}
}

func TestMergeDirsNoAudio(t *testing.T) {
	base := t.TempDir()
	if _, err := MergeDirs(base, base, base, Options{}); err == nil {
		t.Fatal("expected error when no audio fragments exist")
	}
}
