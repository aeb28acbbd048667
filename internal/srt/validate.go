package srt

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationResult reports the outcome of a single validation pass. Errors
// are ordered by scan position; a fresh result is produced by every pass.
type ValidationResult struct {
	IsValid       bool
	Errors        []string
	SubtitleCount int
}

var timingLinePattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}$`)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate runs the structural and content-budget rules over a payload.
// Validation is strict: no normalization is attempted, every violation is
// recorded, and the scan never aborts early.
func Validate(content string) ValidationResult {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return ValidationResult{IsValid: false, Errors: []string{"Empty file"}}
	}

	var errors []string
	i := 0
	subtitleCount := 0
	for i < len(lines) {
		subtitleCount++

		if !isDigits(lines[i]) {
			errors = append(errors, fmt.Sprintf("Subtitle %d: Invalid index format", subtitleCount))
		}
		i++

		if i < len(lines) && !timingLinePattern.MatchString(lines[i]) {
			errors = append(errors, fmt.Sprintf("Subtitle %d: Invalid timestamp format", subtitleCount))
		}
		i++

		textLine := 0
		for i < len(lines) && !isDigits(lines[i]) {
			textLine++
			chars := utf8.RuneCountInString(lines[i])
			words := len(strings.Fields(lines[i]))
			if chars > MaxLineChars {
				errors = append(errors, fmt.Sprintf("Subtitle %d, line %d: Text too long (%d chars, max %d)", subtitleCount, textLine, chars, MaxLineChars))
			}
			if words > MaxLineWords {
				errors = append(errors, fmt.Sprintf("Subtitle %d, line %d: Too many words (%d words, max %d)", subtitleCount, textLine, words, MaxLineWords))
			}
			i++
		}
	}

	return ValidationResult{
		IsValid:       len(errors) == 0,
		Errors:        errors,
		SubtitleCount: subtitleCount,
	}
}

// FixContent is the lenient line-oriented rewrite pass: timing lines are
// normalized, index and blank lines pass through, and text lines are
// demarkdowned and reflowed when they exceed the display budgets. Block
// re-indexing of expanded content is FixRecords' job, not this pass's.
func FixContent(content string) string {
	lines := strings.Split(content, "\n")
	fixed := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.Contains(line, " --> "):
			parts := strings.Split(line, " --> ")
			if len(parts) == 2 {
				fixed = append(fixed, NormalizeTimestamp(parts[0])+" --> "+NormalizeTimestamp(parts[1]))
			} else {
				fixed = append(fixed, line)
			}
		case isDigits(line):
			fixed = append(fixed, line)
		case line != "":
			line = StripMarkdown(line)
			if utf8.RuneCountInString(line) > MaxLineChars || len(strings.Fields(line)) > MaxLineWords {
				fixed = append(fixed, BreakLongLine(line, MaxLineChars, MaxLineWords)...)
			} else {
				fixed = append(fixed, line)
			}
		default:
			fixed = append(fixed, line)
		}
	}
	return strings.Join(fixed, "\n")
}
