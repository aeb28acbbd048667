package srt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FixOptions controls the validate-and-fix orchestration. Zero budgets fall
// back to the package defaults.
type FixOptions struct {
	AutoFix        bool
	BackupOriginal bool
	MaxChars       int
	MaxWords       int
}

// DefaultFixOptions enables fixing with a backup of the original payload.
func DefaultFixOptions() FixOptions {
	return FixOptions{AutoFix: true, BackupOriginal: true, MaxChars: MaxLineChars, MaxWords: MaxLineWords}
}

// FixReport is the outcome of ValidateAndFix. WasFixed combined with a
// still-invalid Validation means the payload contains shapes the fixer does
// not recognize; callers must check both fields.
type FixReport struct {
	Path       string
	WasFixed   bool
	Validation ValidationResult
}

// ValidateAndFix reads the payload at path, validates it, and (when fixing
// is enabled and needed) writes a repaired payload back in place after
// persisting a backup copy. It never returns an error: every read, write,
// or parse failure is captured in the report's ValidationResult.
//
// The caller owns the target path for the duration of the call; the
// backup-then-overwrite sequence is not atomic.
func ValidateAndFix(path string, opts FixOptions) FixReport {
	report := FixReport{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Validation = ValidationResult{IsValid: false, Errors: []string{fmt.Sprintf("read subtitle file: %v", err)}}
		return report
	}
	content := string(data)

	report.Validation = Validate(content)
	needsFix := !report.Validation.IsValid
	if !needsFix {
		// Per-line budgets can pass while the block's joined text still
		// exceeds them; those blocks must be split into separately timed
		// records.
		needsFix = needsReblock(ParseWithDuration(content, 0), opts.MaxChars, opts.MaxWords)
	}
	if !needsFix || !opts.AutoFix {
		return report
	}

	if opts.BackupOriginal {
		if err := writeBackup(path, data); err != nil {
			report.Validation = ValidationResult{IsValid: false, Errors: []string{fmt.Sprintf("backup original: %v", err)}}
			return report
		}
	}

	fixed := FixContent(content)
	if !hasTimestampErrors(Validate(fixed)) {
		// Timestamps all parse now, so over-budget content can be re-blocked
		// into separately timed records instead of extra lines per block.
		records := FixRecords(ParseWithDuration(fixed, 0), opts.MaxChars, opts.MaxWords)
		fixed = SerializeRecords(records)
	}

	if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
		report.Validation = ValidationResult{IsValid: false, Errors: []string{fmt.Sprintf("write fixed file: %v", err)}}
		return report
	}

	report.WasFixed = true
	report.Validation = Validate(fixed)
	return report
}

func writeBackup(path string, data []byte) error {
	dir := filepath.Join(filepath.Dir(path), "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	backupName := strings.TrimSuffix(name, ext) + "_backup" + ext
	return os.WriteFile(filepath.Join(dir, backupName), data, 0o644)
}

func needsReblock(records []Record, maxChars, maxWords int) bool {
	if maxChars <= 0 {
		maxChars = MaxLineChars
	}
	if maxWords <= 0 {
		maxWords = MaxLineWords
	}
	for _, record := range records {
		joined := StripMarkdown(record.JoinedText())
		if utf8.RuneCountInString(joined) > maxChars || len(strings.Fields(joined)) > maxWords {
			return true
		}
	}
	return false
}

func hasTimestampErrors(result ValidationResult) bool {
	for _, message := range result.Errors {
		if strings.Contains(message, "Invalid timestamp format") {
			return true
		}
	}
	return false
}
