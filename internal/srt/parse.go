package srt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// EndOfTranscriptSentinel is appended by the transcription prompt as the
// final subtitle block. It is a generation artifact, not spoken content.
const EndOfTranscriptSentinel = "[END OF TRANSCRIPT]"

// Record is one subtitle block. Index is display order only; it is
// reassigned whenever records are reflowed or merged.
type Record struct {
	Index int
	Start float64
	End   float64
	Text  []string
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	cp := r
	cp.Text = append([]string(nil), r.Text...)
	return cp
}

// JoinedText returns the record's display lines joined with spaces.
func (r Record) JoinedText() string {
	return strings.Join(r.Text, " ")
}

var blockSeparator = regexp.MustCompile(`\n\s*\n`)

// Parse splits an SRT payload into records. Blocks with fewer than three
// lines or an unparsable timing line are dropped rather than reported;
// malformed trailing blocks are common in generated output.
func Parse(content string) []Record {
	return ParseWithDuration(content, 0)
}

// ParseWithDuration parses like Parse and additionally applies the two
// end-of-payload rules: a trailing end-of-transcript sentinel record is
// dropped, and when audioDuration is positive the last record's end time is
// clamped so subtitles never outlast the audio.
func ParseWithDuration(content string, audioDuration float64) []Record {
	var records []Record
	content = strings.TrimSpace(content)
	if content == "" {
		return records
	}
	for _, block := range blockSeparator.Split(content, -1) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}
		timing := lines[1]
		if !strings.Contains(timing, "-->") {
			continue
		}
		parts := strings.SplitN(timing, "-->", 2)
		start, errStart := ParseTimestamp(parts[0])
		end, errEnd := ParseTimestamp(parts[1])
		if errStart != nil || errEnd != nil {
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			index = len(records) + 1
		}
		text := make([]string, 0, len(lines)-2)
		for _, line := range lines[2:] {
			text = append(text, strings.TrimRight(line, "\r"))
		}
		records = append(records, Record{Index: index, Start: start, End: end, Text: text})
	}

	if len(records) > 0 && strings.Contains(strings.TrimSpace(records[len(records)-1].JoinedText()), EndOfTranscriptSentinel) {
		records = records[:len(records)-1]
	}
	if audioDuration > 0 && len(records) > 0 && records[len(records)-1].End > audioDuration {
		records[len(records)-1].End = audioDuration
	}
	return records
}

// SerializeRecords renders records back to SRT text. Indexes are reassigned
// sequentially from 1; parse followed by serialize round-trips everything
// except the index values.
func SerializeRecords(records []Record) string {
	var b strings.Builder
	for i, record := range records {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(record.Start), FormatTimestamp(record.End))
		for _, line := range record.Text {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
