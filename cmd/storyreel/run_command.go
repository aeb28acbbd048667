package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storyreel/internal/config"
	"storyreel/internal/queue"
	"storyreel/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process every chapter: synthesize, transcribe, validate, merge, render",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				logger := ctx.newLogger(cfg)
				manager := workflow.NewManager(cfg, store, logger)

				summary, err := manager.Run(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				rows := [][]string{
					{"Run ID", summary.RunID},
					{"New chapters", fmt.Sprintf("%d", summary.Scanned)},
					{"Processed", fmt.Sprintf("%d", summary.Processed)},
					{"Failed", fmt.Sprintf("%d", summary.Failed)},
					{"Needs review", fmt.Sprintf("%d", summary.Review)},
					{"Elapsed", summary.Elapsed.Round(time.Second).String()},
				}
				if summary.SubtitlePath != "" {
					rows = append(rows, []string{"Merged subtitles", summary.SubtitlePath})
				}
				if summary.MarksPath != "" {
					rows = append(rows, []string{"Chapter marks", summary.MarksPath})
				}
				if summary.VideoPath != "" {
					rows = append(rows, []string{"Video", summary.VideoPath})
				}
				fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}
}
