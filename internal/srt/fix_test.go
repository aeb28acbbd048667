package srt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSRT(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidateAndFixLeavesValidFileAlone(t *testing.T) {
	dir := t.TempDir()
	path := writeSRT(t, dir, "chapter.srt", samplePayload)

	report := ValidateAndFix(path, DefaultFixOptions())
	if report.WasFixed {
		t.Fatal("valid file should not be rewritten")
	}
	if !report.Validation.IsValid {
		t.Fatalf("expected valid result, got %v", report.Validation.Errors)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != samplePayload {
		t.Fatal("file content changed")
	}
}

func TestValidateAndFixRepairsAndBacksUp(t *testing.T) {
	dir := t.TempDir()
	broken := "1\n3:31,100 --> 3:33,500\nHello **there** everyone.\n"
	path := writeSRT(t, dir, "chapter 2.srt", broken)

	report := ValidateAndFix(path, DefaultFixOptions())
	if !report.WasFixed {
		t.Fatalf("expected fix, got %+v", report)
	}
	if !report.Validation.IsValid {
		t.Fatalf("fixed payload should validate, got %v", report.Validation.Errors)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixed: %v", err)
	}
	if !strings.Contains(string(data), "00:03:31,100 --> 00:03:33,500") {
		t.Errorf("timestamps not repaired: %q", string(data))
	}
	if strings.Contains(string(data), "**") {
		t.Errorf("markdown survived fix: %q", string(data))
	}

	backup, err := os.ReadFile(filepath.Join(dir, "backup", "chapter 2_backup.srt"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != broken {
		t.Error("backup does not hold the original payload")
	}
}

func TestValidateAndFixSplitsOverBudgetRecords(t *testing.T) {
	dir := t.TempDir()
	payload := `9
00:00:44,550 --> 00:00:49,900
Lê Mạn nhếch mép cười, thầm nói:
"Làn da của thân thể này giống y hệt
kiếp trước của nàng,
`
	path := writeSRT(t, dir, "chapter.srt", payload)

	report := ValidateAndFix(path, DefaultFixOptions())
	if !report.WasFixed {
		t.Fatalf("expected fix, got %+v", report)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixed: %v", err)
	}
	records := Parse(string(data))
	if len(records) < 2 {
		t.Fatalf("over-budget record should split into blocks, got %d", len(records))
	}
	if records[0].Start != 44.55 {
		t.Errorf("first block start = %v, want 44.55", records[0].Start)
	}
	if records[len(records)-1].End != 49.9 {
		t.Errorf("last block end = %v, want 49.9", records[len(records)-1].End)
	}
	for i, record := range records {
		if record.Index != i+1 {
			t.Errorf("block %d has index %d", i, record.Index)
		}
		if record.End <= record.Start {
			t.Errorf("block %d has non-positive duration", i)
		}
	}
}

func TestValidateAndFixDisabled(t *testing.T) {
	dir := t.TempDir()
	broken := "1\nbad --> worse\nHello.\n"
	path := writeSRT(t, dir, "chapter.srt", broken)

	report := ValidateAndFix(path, FixOptions{AutoFix: false})
	if report.WasFixed {
		t.Fatal("fix should be disabled")
	}
	if report.Validation.IsValid {
		t.Fatal("payload should report invalid")
	}
	data, _ := os.ReadFile(path)
	if string(data) != broken {
		t.Fatal("file should be untouched when fixing is disabled")
	}
}

func TestValidateAndFixMissingFile(t *testing.T) {
	report := ValidateAndFix(filepath.Join(t.TempDir(), "missing.srt"), DefaultFixOptions())
	if report.WasFixed {
		t.Fatal("missing file cannot be fixed")
	}
	if report.Validation.IsValid || len(report.Validation.Errors) != 1 {
		t.Fatalf("expected a single read error, got %+v", report.Validation)
	}
}

func TestValidateAndFixResidualInvalid(t *testing.T) {
	dir := t.TempDir()
	payload := "1\nnot a time --> also bad\nHello.\n"
	path := writeSRT(t, dir, "chapter.srt", payload)

	report := ValidateAndFix(path, FixOptions{AutoFix: true})
	if !report.WasFixed {
		t.Fatal("fix pass should still run")
	}
	if report.Validation.IsValid {
		t.Fatal("unrecognized timestamp shape must stay invalid")
	}
}
