package timeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storyreel/internal/srt"
)

func writeFileT(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func fixedDurations(durations map[string]float64) func(string) (float64, error) {
	return func(path string) (float64, error) {
		base := filepath.Base(path)
		if d, ok := durations[base]; ok {
			return d, nil
		}
		return 0, fmt.Errorf("unknown audio %s", base)
	}
}

const unitPayload = `1
00:00:00,000 --> 00:00:05,000
Hello
`

func TestMergeOffsetsRecords(t *testing.T) {
	dir := t.TempDir()
	writeFileT(t, filepath.Join(dir, "a.srt"), unitPayload)
	writeFileT(t, filepath.Join(dir, "b.srt"), `1
00:00:02,000 --> 00:00:04,500
Second chapter opening
`)

	units := []Unit{
		{Name: "a", AudioPath: filepath.Join(dir, "a.wav"), SubtitlePath: filepath.Join(dir, "a.srt")},
		{Name: "b", AudioPath: filepath.Join(dir, "b.wav"), SubtitlePath: filepath.Join(dir, "b.srt")},
	}
	opts := Options{Duration: fixedDurations(map[string]float64{"a.wav": 120, "b.wav": 30})}

	merged, reports := Merge(units, opts)
	if len(merged.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(merged.Records))
	}
	if merged.Records[0].Start != 0 || merged.Records[0].End != 5 {
		t.Errorf("first record timing wrong: %+v", merged.Records[0])
	}
	// Offset additivity: unit b's record starts at 120 + its own 2s.
	if math.Abs(merged.Records[1].Start-122) > 1e-9 || math.Abs(merged.Records[1].End-124.5) > 1e-9 {
		t.Errorf("second record timing wrong: %+v", merged.Records[1])
	}
	if merged.Records[0].Index != 1 || merged.Records[1].Index != 2 {
		t.Errorf("records not renumbered globally: %+v", merged.Records)
	}
	if math.Abs(merged.TotalDuration-150) > 1e-9 {
		t.Errorf("total duration = %v, want 150", merged.TotalDuration)
	}
	if len(merged.Marks) != 2 {
		t.Fatalf("expected 2 chapter marks, got %d", len(merged.Marks))
	}
	if merged.Marks[1].Name != "b" || math.Abs(merged.Marks[1].Offset-122) > 1e-9 {
		t.Errorf("unexpected second mark: %+v", merged.Marks[1])
	}
	for _, report := range reports {
		if report.Skipped {
			t.Errorf("unexpected skip: %+v", report)
		}
	}
}

func TestMergeMissingAudioLeavesSyntheticGap(t *testing.T) {
	dir := t.TempDir()
	writeFileT(t, filepath.Join(dir, "a.srt"), unitPayload)
	writeFileT(t, filepath.Join(dir, "b.srt"), unitPayload)

	units := []Unit{
		{Name: "a", AudioPath: filepath.Join(dir, "a.wav"), SubtitlePath: filepath.Join(dir, "a.srt")},
		{Name: "b", AudioPath: filepath.Join(dir, "b.wav"), SubtitlePath: filepath.Join(dir, "b.srt")},
		{Name: "c", AudioPath: filepath.Join(dir, "c.wav"), SubtitlePath: filepath.Join(dir, "c.srt")},
	}
	// b's audio is unknown, c has audio but no subtitle file.
	opts := Options{Duration: fixedDurations(map[string]float64{"a.wav": 120, "c.wav": 45})}

	merged, reports := Merge(units, opts)
	if len(merged.Records) != 1 {
		t.Fatalf("expected only unit a's record, got %d", len(merged.Records))
	}
	// 120 + default 60s synthetic gap + 45.
	if math.Abs(merged.TotalDuration-225) > 1e-9 {
		t.Errorf("total duration = %v, want 225", merged.TotalDuration)
	}
	if len(merged.Marks) != 1 || merged.Marks[0].Name != "a" {
		t.Errorf("only unit a should have a mark, got %+v", merged.Marks)
	}
	if !reports[1].Skipped || !reports[2].Skipped {
		t.Errorf("units b and c should report skips: %+v", reports)
	}
}

func TestMergeInvalidSubtitlesLeaveDurationGap(t *testing.T) {
	dir := t.TempDir()
	// Record ends at 10s but audio is only 8s; middle record overruns even
	// though the last record gets clamped.
	writeFileT(t, filepath.Join(dir, "a.srt"), `1
00:00:00,000 --> 00:00:10,000
Overruns the audio

2
00:00:10,000 --> 00:00:12,000
Tail
`)
	writeFileT(t, filepath.Join(dir, "b.srt"), unitPayload)

	units := []Unit{
		{Name: "a", AudioPath: filepath.Join(dir, "a.wav"), SubtitlePath: filepath.Join(dir, "a.srt")},
		{Name: "b", AudioPath: filepath.Join(dir, "b.wav"), SubtitlePath: filepath.Join(dir, "b.srt")},
	}
	opts := Options{Duration: fixedDurations(map[string]float64{"a.wav": 8, "b.wav": 30})}

	merged, reports := Merge(units, opts)
	if len(merged.Records) != 1 {
		t.Fatalf("invalid unit should contribute zero records, got %d", len(merged.Records))
	}
	if !reports[0].Skipped {
		t.Fatalf("unit a should be skipped: %+v", reports[0])
	}
	// Gap policy: unit a still advances the offset by its full duration.
	if math.Abs(merged.Records[0].Start-8) > 1e-9 {
		t.Errorf("unit b's record should start at 8, got %v", merged.Records[0].Start)
	}
	if math.Abs(merged.TotalDuration-38) > 1e-9 {
		t.Errorf("total duration = %v, want 38", merged.TotalDuration)
	}
}

func TestMergeEndClampAccepted(t *testing.T) {
	dir := t.TempDir()
	// Only the final record overruns; the parser clamps it to the audio
	// duration so the unit merges cleanly.
	writeFileT(t, filepath.Join(dir, "a.srt"), `1
00:00:00,000 --> 00:00:04,000
Fine

2
00:00:04,000 --> 00:00:12,000
Runs long
`)
	units := []Unit{{Name: "a", AudioPath: filepath.Join(dir, "a.wav"), SubtitlePath: filepath.Join(dir, "a.srt")}}
	opts := Options{Duration: fixedDurations(map[string]float64{"a.wav": 10})}

	merged, reports := Merge(units, opts)
	if reports[0].Skipped {
		t.Fatalf("clamped unit should merge: %+v", reports[0])
	}
	if len(merged.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(merged.Records))
	}
	if math.Abs(merged.Records[1].End-10) > 1e-9 {
		t.Errorf("last record should clamp to 10, got %v", merged.Records[1].End)
	}
}

func TestFormatMarkTime(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00"},
		{122.9, "00:02:02"},
		{3661, "01:01:01"},
		{-5, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatMarkTime(tc.in); got != tc.want {
			t.Errorf("FormatMarkTime(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMergeSerializedOutputRoundTrips(t *testing.T) {
	dir := t.TempDir()
	writeFileT(t, filepath.Join(dir, "a.srt"), unitPayload)
	units := []Unit{{Name: "a", AudioPath: filepath.Join(dir, "a.wav"), SubtitlePath: filepath.Join(dir, "a.srt")}}
	opts := Options{Duration: fixedDurations(map[string]float64{"a.wav": 20})}

	merged, _ := Merge(units, opts)
	parsed := srt.Parse(srt.SerializeRecords(merged.Records))
	if len(parsed) != len(merged.Records) {
		t.Fatalf("serialized merge does not round trip: %d vs %d", len(parsed), len(merged.Records))
	}
	if !strings.Contains(srt.SerializeRecords(merged.Records), "00:00:00,000 --> 00:00:05,000") {
		t.Error("merged payload missing expected timing line")
	}
}
