package tts

import (
	"strconv"
	"strings"
)

// PCMFormat describes the sample layout of a streamed audio fragment.
type PCMFormat struct {
	BitsPerSample int
	SampleRate    int
}

const (
	defaultBitsPerSample = 16
	defaultSampleRate    = 24000
)

// ParseAudioMIME extracts bits per sample and sample rate from an audio MIME
// type string such as "audio/L16;codec=pcm;rate=24000". Unrecognized or
// malformed parameters fall back to 16-bit 24kHz.
func ParseAudioMIME(mimeType string) PCMFormat {
	format := PCMFormat{
		BitsPerSample: defaultBitsPerSample,
		SampleRate:    defaultSampleRate,
	}

	for _, param := range strings.Split(mimeType, ";") {
		param = strings.TrimSpace(param)
		if rest, ok := strings.CutPrefix(strings.ToLower(param), "rate="); ok {
			if rate, err := strconv.Atoi(rest); err == nil {
				format.SampleRate = rate
			}
			continue
		}
		if rest, ok := strings.CutPrefix(param, "audio/L"); ok {
			if bits, err := strconv.Atoi(rest); err == nil {
				format.BitsPerSample = bits
			}
		}
	}
	return format
}
