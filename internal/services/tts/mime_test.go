package tts

import "testing"

func TestParseAudioMIME(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		want     PCMFormat
	}{
		{"typical stream type", "audio/L16;codec=pcm;rate=24000", PCMFormat{16, 24000}},
		{"custom rate", "audio/L16;rate=44100", PCMFormat{16, 44100}},
		{"24 bit", "audio/L24;rate=48000", PCMFormat{24, 48000}},
		{"missing parameters", "audio/wav", PCMFormat{16, 24000}},
		{"malformed rate", "audio/L16;rate=", PCMFormat{16, 24000}},
		{"malformed bits", "audio/Labc;rate=8000", PCMFormat{16, 8000}},
		{"empty", "", PCMFormat{16, 24000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAudioMIME(tt.mimeType); got != tt.want {
				t.Fatalf("ParseAudioMIME(%q) = %+v, want %+v", tt.mimeType, got, tt.want)
			}
		})
	}
}
