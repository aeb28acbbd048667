package srt

import (
	"strings"
	"testing"
)

func TestValidateAcceptsCanonicalPayload(t *testing.T) {
	result := Validate(samplePayload)
	if !result.IsValid {
		t.Fatalf("expected valid payload, got errors: %v", result.Errors)
	}
	if result.SubtitleCount != 3 {
		t.Errorf("subtitle count = %d, want 3", result.SubtitleCount)
	}
}

func TestValidateEmptyPayload(t *testing.T) {
	result := Validate("  \n ")
	if result.IsValid {
		t.Fatal("empty payload should be invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Empty file" {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	payload := `one
3:31,100 --> 00:03:33,000
` + strings.Repeat("a", 61) + `
`
	result := Validate(payload)
	if result.IsValid {
		t.Fatal("expected invalid payload")
	}
	// One index error, one timestamp error, one line-length error, in scan order.
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Invalid index format") {
		t.Errorf("first error should be the index violation: %v", result.Errors)
	}
	if !strings.Contains(result.Errors[1], "Invalid timestamp format") {
		t.Errorf("second error should be the timestamp violation: %v", result.Errors)
	}
	if !strings.Contains(result.Errors[2], "Text too long") {
		t.Errorf("third error should be the length violation: %v", result.Errors)
	}
}

func TestValidateWordBudget(t *testing.T) {
	payload := `1
00:00:01,000 --> 00:00:02,000
one two three four five six seven eight nine ten eleven
`
	result := Validate(payload)
	if result.IsValid {
		t.Fatal("expected word-budget violation")
	}
	if !strings.Contains(result.Errors[0], "Too many words") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestFixContentNormalizesTimestamps(t *testing.T) {
	payload := "1\n3:31,100 --> 00:03:33.000\nHello there.\n"
	fixed := FixContent(payload)
	if !strings.Contains(fixed, "00:03:31,100 --> 00:03:33,000") {
		t.Fatalf("timestamps not normalized: %q", fixed)
	}
}

func TestFixContentReflowsLongLines(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 10)
	payload := "1\n00:00:01,000 --> 00:00:05,000\n" + long + "\n"
	fixed := FixContent(payload)
	for _, line := range strings.Split(fixed, "\n") {
		if len(strings.Fields(line)) > MaxLineWords {
			t.Errorf("line still over word budget: %q", line)
		}
	}
}

func TestFixConvergence(t *testing.T) {
	payload := "1\n3:31,100 --> 3:33,500\n**" + strings.Repeat("chars and words repeated over budget ", 4) + "**\n"
	result := Validate(FixContent(payload))
	for _, message := range result.Errors {
		if strings.Contains(message, "Text too long") || strings.Contains(message, "Too many words") {
			t.Errorf("budget violation survived fix: %v", message)
		}
	}
}

func TestFixContentLeavesUnrecognizedTimestamps(t *testing.T) {
	payload := "1\nnot a time --> also bad\nHello.\n"
	fixed := FixContent(payload)
	if !strings.Contains(fixed, "not a time --> also bad") {
		t.Fatalf("unrecognized timestamps should pass through: %q", fixed)
	}
	if Validate(fixed).IsValid {
		t.Fatal("residual timestamp violation should remain")
	}
}
