package ffprobe

import (
	"context"
	"testing"
)

func TestInspectEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestDurationSeconds(t *testing.T) {
	cases := []struct {
		duration string
		want     float64
	}{
		{"120.5", 120.5},
		{"", 0},
		{"garbage", 0},
		{"-3", 0},
	}
	for _, tc := range cases {
		result := Result{Format: Format{Duration: tc.duration}}
		if got := result.DurationSeconds(); got != tc.want {
			t.Errorf("DurationSeconds(%q) = %v, want %v", tc.duration, got, tc.want)
		}
	}
}

func TestAudioStreamCount(t *testing.T) {
	result := Result{Streams: []Stream{
		{CodecType: "video"},
		{CodecType: "audio"},
		{CodecType: "Audio"},
	}}
	if got := result.AudioStreamCount(); got != 2 {
		t.Fatalf("AudioStreamCount = %d, want 2", got)
	}
}
