package srt

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts a canonical SRT timestamp (HH:MM:SS,mmm) into
// seconds. Callers should normalize malformed shapes first; anything that is
// not three colon-separated numeric fields is rejected.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	normalized := strings.ReplaceAll(value, ",", ".")
	fields := strings.Split(normalized, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(fields[0])
	minutes, errM := strconv.Atoi(fields[1])
	seconds, errS := strconv.ParseFloat(fields[2], 64)
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// FormatTimestamp renders seconds as HH:MM:SS,mmm. The hour field is
// two-digit padded and widens past 99 hours instead of wrapping.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600+minutes*60)
	return strings.ReplaceAll(fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs), ".", ",")
}

// NormalizeTimestamp rewrites the malformed timestamp shapes the generator
// emits into the canonical HH:MM:SS,mmm form by zero-padding components
// positionally: dot-separated milliseconds, missing hour field, missing
// milliseconds, and single-digit hours. Unrecognized shapes pass through
// unchanged so they surface as residual validation errors downstream.
func NormalizeTimestamp(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, ".", ",")
	parts := strings.Split(strings.ReplaceAll(value, ",", ":"), ":")
	switch len(parts) {
	case 2:
		// Legacy minutes:milliseconds shape; seconds implicitly zero.
		return fmt.Sprintf("00:00:%s,%s", zfill(parts[0], 2), zfill(parts[1], 3))
	case 3:
		if len(parts[2]) == 3 {
			// MM:SS:mmm
			return fmt.Sprintf("00:%s:%s,%s", zfill(parts[0], 2), zfill(parts[1], 2), zfill(parts[2], 3))
		}
		// HH:MM:SS with no milliseconds
		return fmt.Sprintf("%s:%s:%s,000", zfill(parts[0], 2), zfill(parts[1], 2), zfill(parts[2], 2))
	case 4:
		return fmt.Sprintf("%s:%s:%s,%s", zfill(parts[0], 2), zfill(parts[1], 2), zfill(parts[2], 2), zfill(parts[3], 3))
	}
	return value
}

func zfill(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}
