// Package wav reads WAV container headers. Only the format chunk is
// decoded; audio samples are never touched, which keeps duration lookups on
// multi-hour narration files cheap.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Format describes the PCM encoding parameters of a WAV file.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	DataBytes     int64
}

// Duration returns the audio length in seconds derived from the data chunk
// size and the byte rate.
func (f Format) Duration() float64 {
	byteRate := f.SampleRate * f.Channels * f.BitsPerSample / 8
	if byteRate <= 0 {
		return 0
	}
	return float64(f.DataBytes) / float64(byteRate)
}

var errNotWAV = errors.New("not a RIFF/WAVE file")

// Inspect parses the RIFF header chunks of the file at path.
func Inspect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Format{}, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()
	return decodeHeader(f)
}

// DurationSeconds is a convenience wrapper returning just the duration.
func DurationSeconds(path string) (float64, error) {
	format, err := Inspect(path)
	if err != nil {
		return 0, err
	}
	return format.Duration(), nil
}

func decodeHeader(r io.ReadSeeker) (Format, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Format{}, fmt.Errorf("read riff header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Format{}, errNotWAV
	}

	var format Format
	sawFmt := false
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return Format{}, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			var fmtChunk [16]byte
			if _, err := io.ReadFull(r, fmtChunk[:]); err != nil {
				return Format{}, fmt.Errorf("read fmt chunk: %w", err)
			}
			format.Channels = int(binary.LittleEndian.Uint16(fmtChunk[2:4]))
			format.SampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			format.BitsPerSample = int(binary.LittleEndian.Uint16(fmtChunk[14:16]))
			sawFmt = true
			if size > 16 {
				if _, err := r.Seek(size-16, io.SeekCurrent); err != nil {
					return Format{}, fmt.Errorf("skip fmt extension: %w", err)
				}
			}
		case "data":
			format.DataBytes = size
			if sawFmt {
				return format, nil
			}
			if _, err := r.Seek(size, io.SeekCurrent); err != nil {
				return Format{}, fmt.Errorf("skip data chunk: %w", err)
			}
		default:
			// Chunks are word aligned.
			if size%2 == 1 {
				size++
			}
			if _, err := r.Seek(size, io.SeekCurrent); err != nil {
				return Format{}, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
	if !sawFmt {
		return Format{}, errors.New("wav: missing fmt chunk")
	}
	return format, nil
}

// EncodeHeader renders a canonical 44-byte PCM WAV header for raw sample
// data of the given length. Used when the speech service returns bare PCM.
func EncodeHeader(format Format, dataSize int) []byte {
	channels := format.Channels
	if channels <= 0 {
		channels = 1
	}
	bytesPerSample := format.BitsPerSample / 8
	blockAlign := channels * bytesPerSample
	byteRate := format.SampleRate * blockAlign

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(format.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(format.BitsPerSample))
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
	return header
}
