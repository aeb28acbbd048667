package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"storyreel/internal/logging"
	"storyreel/internal/media/ffprobe"
	"storyreel/internal/media/wav"
	"storyreel/internal/srt"
)

// DefaultGapSeconds is the synthetic offset advance for units whose audio
// duration cannot be determined.
const DefaultGapSeconds = 60.0

// Unit pairs one chapter's audio fragment with its subtitle payload.
// SubtitlePath may point at a missing file; that unit then contributes only
// a gap. Units must arrive in natural-sorted order.
type Unit struct {
	Name         string
	AudioPath    string
	SubtitlePath string
}

// Mark records where a unit's first subtitle lands on the global timeline.
type Mark struct {
	Offset float64
	Name   string
}

// Timeline is the result of one merge run.
type Timeline struct {
	Records       []srt.Record
	TotalDuration float64
	Marks         []Mark
}

// UnitReport describes what a single unit contributed to the merge.
type UnitReport struct {
	Name     string
	Duration float64
	Records  int
	Skipped  bool
	Reason   string
}

// Options controls merge behavior. The zero value uses the default gap and
// the WAV-header prober with ffprobe fallback.
type Options struct {
	GapSeconds float64
	Duration   func(path string) (float64, error)
	Logger     *slog.Logger
}

func (o Options) normalized() Options {
	if o.GapSeconds <= 0 {
		o.GapSeconds = DefaultGapSeconds
	}
	if o.Duration == nil {
		o.Duration = ProbeDuration
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// ProbeDuration reads the audio duration from the WAV header, falling back
// to ffprobe for containers the header reader does not understand.
func ProbeDuration(path string) (float64, error) {
	if seconds, err := wav.DurationSeconds(path); err == nil && seconds > 0 {
		return seconds, nil
	}
	result, err := ffprobe.Inspect(context.Background(), "", path)
	if err != nil {
		return 0, err
	}
	if seconds := result.DurationSeconds(); seconds > 0 {
		return seconds, nil
	}
	return 0, fmt.Errorf("no usable duration for %s", path)
}

// Merge walks units in caller order, offsetting each unit's subtitle
// records by the running total of preceding audio durations. A per-unit
// failure never aborts the merge; it is recorded in the unit's report and
// the offset still advances.
func Merge(units []Unit, opts Options) (Timeline, []UnitReport) {
	opts = opts.normalized()

	var timeline Timeline
	reports := make([]UnitReport, 0, len(units))
	offset := 0.0
	counter := 1

	for _, unit := range units {
		report := UnitReport{Name: unit.Name}

		duration, err := opts.Duration(unit.AudioPath)
		if err != nil || duration <= 0 {
			report.Skipped = true
			report.Reason = "audio duration unavailable"
			if err != nil {
				report.Reason = fmt.Sprintf("audio duration unavailable: %v", err)
			}
			reports = append(reports, report)
			opts.Logger.Warn("skipping unit, advancing by synthetic gap",
				logging.String("unit", unit.Name),
				logging.Float64("gap_seconds", opts.GapSeconds))
			offset += opts.GapSeconds
			continue
		}
		report.Duration = duration

		records, reason := loadUnitRecords(unit, duration)
		if reason != "" {
			report.Skipped = true
			report.Reason = reason
			reports = append(reports, report)
			opts.Logger.Warn("leaving gap for unit",
				logging.String("unit", unit.Name),
				logging.String("reason", reason),
				logging.Float64("duration_seconds", duration))
			offset += duration
			continue
		}

		timeline.Marks = append(timeline.Marks, Mark{Offset: offset + records[0].Start, Name: unit.Name})
		for _, record := range records {
			shifted := record.Clone()
			shifted.Index = counter
			shifted.Start += offset
			shifted.End += offset
			timeline.Records = append(timeline.Records, shifted)
			counter++
		}
		report.Records = len(records)
		reports = append(reports, report)
		opts.Logger.Info("merged unit",
			logging.String("unit", unit.Name),
			logging.Int("records", len(records)),
			logging.Float64("offset_seconds", offset))

		offset += duration
	}

	timeline.TotalDuration = offset
	return timeline, reports
}

// loadUnitRecords parses and validates one unit's subtitles against its
// audio duration. A non-empty reason means the unit contributes a gap.
func loadUnitRecords(unit Unit, duration float64) ([]srt.Record, string) {
	data, err := os.ReadFile(unit.SubtitlePath)
	if err != nil {
		return nil, fmt.Sprintf("subtitle file unreadable: %v", err)
	}
	records := srt.ParseWithDuration(string(data), duration)
	if len(records) == 0 {
		return nil, "no subtitle records"
	}
	for _, record := range records {
		if record.End > duration {
			return nil, fmt.Sprintf("subtitle ends at %.2fs but audio is only %.2fs", record.End, duration)
		}
	}
	return records, ""
}

// FormatMarkTime renders a chapter-mark timestamp in the coarse HH:MM:SS
// form, distinct from the subtitle codec's millisecond form.
func FormatMarkTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
