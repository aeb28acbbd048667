package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storyreel/internal/timeline"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Merge per-chapter subtitles onto one timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.newLogger(cfg)

			result, err := timeline.MergeDirs(cfg.Paths.DoneDir, cfg.Paths.SubtitleDir, cfg.Paths.OutputDir, timeline.Options{
				GapSeconds: cfg.Workflow.GapSeconds,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, report := range result.Reports {
				if report.Skipped {
					fmt.Fprintf(out, "Gap    %s: %s\n", report.Name, report.Reason)
					continue
				}
				fmt.Fprintf(out, "Merged %s: %d subtitles, %.1fs\n", report.Name, report.Records, report.Duration)
			}
			total := time.Duration(result.Timeline.TotalDuration * float64(time.Second)).Round(time.Second)
			fmt.Fprintf(out, "\n%d subtitles over %s\n", len(result.Timeline.Records), total)
			fmt.Fprintf(out, "Subtitles: %s\n", result.SubtitlePath)
			if result.MarksPath != "" {
				fmt.Fprintf(out, "Chapter marks: %s\n", result.MarksPath)
			}
			return nil
		},
	}
}
