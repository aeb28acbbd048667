package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"storyreel/internal/media/wav"
)

// WriteText writes a chapter text fixture, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteWAV writes a silent PCM WAV fixture of the given length in the
// narration format used by the speech service.
func WriteWAV(t testing.TB, path string, seconds float64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	format := wav.Format{Channels: 1, SampleRate: 24000, BitsPerSample: 16}
	dataSize := int(float64(format.SampleRate*format.Channels*format.BitsPerSample/8) * seconds)
	payload := append(wav.EncodeHeader(format, dataSize), make([]byte, dataSize)...)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
