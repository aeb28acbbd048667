package timeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storyreel/internal/logging"
	"storyreel/internal/srt"
	"storyreel/internal/textutil"
)

// MergeResult names the artifacts written by MergeDirs.
type MergeResult struct {
	Timeline     Timeline
	Reports      []UnitReport
	SubtitlePath string
	MarksPath    string
}

// CollectUnits pairs every .wav file in audioDir with the same-named .srt
// file in srtDir, in natural-sorted order. Missing subtitle files are still
// paired; the merge turns them into gaps.
func CollectUnits(audioDir, srtDir string) ([]Unit, error) {
	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return nil, fmt.Errorf("read audio directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}
		names = append(names, entry.Name())
	}
	textutil.SortNatural(names)

	units := make([]Unit, 0, len(names))
	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		units = append(units, Unit{
			Name:         base,
			AudioPath:    filepath.Join(audioDir, name),
			SubtitlePath: filepath.Join(srtDir, base+".srt"),
		})
	}
	return units, nil
}

// MergeDirs merges every audio/subtitle pair found under the two
// directories and writes the merged subtitle payload and chapter-mark list
// into outDir. Artifact names derive from the first and last unit so a
// chapter range is recognizable at a glance.
func MergeDirs(audioDir, srtDir, outDir string, opts Options) (MergeResult, error) {
	units, err := CollectUnits(audioDir, srtDir)
	if err != nil {
		return MergeResult{}, err
	}
	if len(units) == 0 {
		return MergeResult{}, fmt.Errorf("no audio fragments in %s", audioDir)
	}

	merged, reports := Merge(units, opts)
	result := MergeResult{Timeline: merged, Reports: reports}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	rangeName := textutil.SanitizeFileName(units[0].Name + " - " + units[len(units)-1].Name)
	result.SubtitlePath = filepath.Join(outDir, rangeName+".srt")
	result.MarksPath = filepath.Join(outDir, "timestamps_"+rangeName+".txt")

	if err := os.WriteFile(result.SubtitlePath, []byte(srt.SerializeRecords(merged.Records)), 0o644); err != nil {
		return result, fmt.Errorf("write merged subtitles: %w", err)
	}
	if len(merged.Marks) > 0 {
		var b strings.Builder
		for _, mark := range merged.Marks {
			fmt.Fprintf(&b, "%s %s\n", FormatMarkTime(mark.Offset), mark.Name)
		}
		if err := os.WriteFile(result.MarksPath, []byte(b.String()), 0o644); err != nil {
			return result, fmt.Errorf("write chapter marks: %w", err)
		}
	} else {
		result.MarksPath = ""
	}

	if opts.Logger != nil {
		opts.Logger.Info("merge complete",
			logging.Int("units", len(units)),
			logging.Int("records", len(merged.Records)),
			logging.Float64("total_seconds", merged.TotalDuration),
			logging.String("output", result.SubtitlePath))
	}
	return result, nil
}
