package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storyreel/internal/config"
	"storyreel/internal/queue"
	"storyreel/internal/workflow"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline health and chapter progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				manager := workflow.NewManager(cfg, store, ctx.newLogger(cfg))
				health, err := manager.HealthCheck(cmd.Context())
				if err != nil {
					return err
				}

				for _, line := range renderSectionHeader("Stages", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, stg := range health.Stages {
					kind := statusOK
					message := ""
					if !stg.Ready {
						kind = statusError
						message = stg.Detail
					}
					fmt.Fprintln(out, renderStatusLine(stg.Name, kind, message, colorize))
				}

				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Queue", colorize) {
					fmt.Fprintln(out, line)
				}
				summary := health.Queue
				fmt.Fprintln(out, renderStatusLine("total", statusInfo, fmt.Sprintf("%d", summary.Total), colorize))
				fmt.Fprintln(out, renderStatusLine("pending", statusInfo, fmt.Sprintf("%d", summary.Pending), colorize))
				fmt.Fprintln(out, renderStatusLine("processing", statusInfo, fmt.Sprintf("%d", summary.Processing), colorize))
				fmt.Fprintln(out, renderStatusLine("merged", statusOK, fmt.Sprintf("%d", summary.Merged), colorize))
				failedKind := statusOK
				if summary.Failed > 0 {
					failedKind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("failed", failedKind, fmt.Sprintf("%d", summary.Failed), colorize))
				reviewKind := statusOK
				if summary.Review > 0 {
					reviewKind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("review", reviewKind, fmt.Sprintf("%d", summary.Review), colorize))

				chapters, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(chapters) == 0 {
					return nil
				}
				fmt.Fprintln(out)
				rows := make([][]string, 0, len(chapters))
				for _, chapter := range chapters {
					detail := chapter.ProgressMessage
					if chapter.ErrorMessage != "" {
						detail = chapter.ErrorMessage
					}
					rows = append(rows, []string{
						fmt.Sprintf("%d", chapter.ID),
						chapter.Name,
						string(chapter.Status),
						yesNo(chapter.NeedsReview),
						strings.TrimSpace(detail),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Chapter", "Status", "Review", "Detail"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}))
				return nil
			})
		},
	}
}
