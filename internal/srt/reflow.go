package srt

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Display budgets enforced on every rendered subtitle line.
const (
	MaxLineChars = 60
	MaxLineWords = 10
)

var markdownEmphasis = regexp.MustCompile(`\*\*(.*?)\*\*|\*(.*?)\*|__(.*?)__|_(.*?)_`)

// StripMarkdown removes the bold/italic emphasis markers the generator
// sometimes emits despite instructions forbidding them.
func StripMarkdown(text string) string {
	return markdownEmphasis.ReplaceAllString(text, "$1$2$3$4")
}

// BreakLongLine greedily wraps text into lines of at most maxChars
// characters and maxWords words. A single word longer than maxChars is
// never split; it passes through as its own over-limit line.
func BreakLongLine(text string, maxChars, maxWords int) []string {
	if maxChars <= 0 {
		maxChars = MaxLineChars
	}
	if maxWords <= 0 {
		maxWords = MaxLineWords
	}
	words := strings.Fields(text)
	var lines []string
	var current []string
	currentLength := 0
	for _, word := range words {
		wordLength := utf8.RuneCountInString(word)
		newLength := currentLength + wordLength
		if len(current) > 0 {
			newLength++ // joining space
		}
		if (len(current) >= maxWords || newLength > maxChars) && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			currentLength = wordLength
		} else {
			current = append(current, word)
			currentLength = newLength
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// SplitRecord re-blocks a record whose text exceeds the display budgets:
// the text lines are joined, demarkdowned, reflowed, and each resulting
// line becomes its own record with the original interval subdivided in
// proportion to line length. Records already within budget are returned
// unchanged as a single-element slice.
func SplitRecord(record Record, maxChars, maxWords int) []Record {
	if maxChars <= 0 {
		maxChars = MaxLineChars
	}
	if maxWords <= 0 {
		maxWords = MaxLineWords
	}
	joined := StripMarkdown(record.JoinedText())
	lines := BreakLongLine(joined, maxChars, maxWords)
	if len(lines) <= 1 {
		out := record.Clone()
		if len(lines) == 1 {
			out.Text = []string{lines[0]}
		}
		return []Record{out}
	}

	total := 0
	for _, line := range lines {
		total += utf8.RuneCountInString(line)
	}
	duration := record.End - record.Start
	records := make([]Record, 0, len(lines))
	cursor := record.Start
	consumed := 0
	for i, line := range lines {
		consumed += utf8.RuneCountInString(line)
		end := record.End
		if i < len(lines)-1 {
			end = record.Start + duration*float64(consumed)/float64(total)
		}
		records = append(records, Record{
			Index: record.Index + i,
			Start: cursor,
			End:   end,
			Text:  []string{line},
		})
		cursor = end
	}
	return records
}

// FixRecords applies SplitRecord across a parsed payload and renumbers the
// result sequentially. A record is re-blocked only when its joined text
// exceeds the budgets, so intentional short multi-line blocks survive.
func FixRecords(records []Record, maxChars, maxWords int) []Record {
	if maxChars <= 0 {
		maxChars = MaxLineChars
	}
	if maxWords <= 0 {
		maxWords = MaxLineWords
	}
	fixed := make([]Record, 0, len(records))
	for _, record := range records {
		joined := StripMarkdown(record.JoinedText())
		if utf8.RuneCountInString(joined) > maxChars || len(strings.Fields(joined)) > maxWords {
			fixed = append(fixed, SplitRecord(record, maxChars, maxWords)...)
			continue
		}
		out := record.Clone()
		for i, line := range out.Text {
			out.Text[i] = StripMarkdown(line)
		}
		fixed = append(fixed, out)
	}
	for i := range fixed {
		fixed[i].Index = i + 1
	}
	return fixed
}
