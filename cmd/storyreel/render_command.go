package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"storyreel/internal/render"
	"storyreel/internal/timeline"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var subtitleFlag string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Composite the background image, narration, and merged subtitles into a video",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Render.ImagePath) == "" {
				return fmt.Errorf("render.image_path is not configured")
			}
			logger := ctx.newLogger(cfg)

			subtitlePath := strings.TrimSpace(subtitleFlag)
			if subtitlePath == "" {
				subtitlePath, err = newestSubtitle(cfg.Paths.OutputDir)
				if err != nil {
					return err
				}
			}

			units, err := timeline.CollectUnits(cfg.Paths.DoneDir, cfg.Paths.SubtitleDir)
			if err != nil {
				return err
			}
			if len(units) == 0 {
				return fmt.Errorf("no narration audio in %s", cfg.Paths.DoneDir)
			}
			merged, reports := timeline.Merge(units, timeline.Options{
				GapSeconds: cfg.Workflow.GapSeconds,
				Logger:     logger,
			})

			renderer := render.NewService(render.Config{
				FFmpegBinary: cfg.FFmpegBinary(),
				ImagePath:    cfg.Render.ImagePath,
				Width:        cfg.Render.Width,
				Height:       cfg.Render.Height,
				FontSize:     cfg.Render.FontSize,
				FadeSeconds:  cfg.Render.FadeSeconds,
			}, logger)

			base := strings.TrimSuffix(filepath.Base(subtitlePath), filepath.Ext(subtitlePath))
			audioPath := filepath.Join(cfg.Paths.OutputDir, base+".wav")
			segments := render.SegmentsFromMerge(units, reports, cfg.Workflow.GapSeconds)
			if err := renderer.AssembleAudio(cmd.Context(), segments, audioPath); err != nil {
				return err
			}

			videoPath := filepath.Join(cfg.Paths.OutputDir, base+".mp4")
			if err := renderer.RenderVideo(cmd.Context(), render.Request{
				AudioPath:       audioPath,
				SubtitlePath:    subtitlePath,
				DurationSeconds: merged.TotalDuration,
				OutputPath:      videoPath,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s\n", videoPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subtitleFlag, "subtitles", "s", "", "Merged subtitle file to burn in (defaults to the newest in the output directory)")
	return cmd
}

// newestSubtitle picks the most recently modified merged subtitle file.
func newestSubtitle(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("read output directory: %w", err)
	}
	var newest string
	var newestMod int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".srt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(outputDir, entry.Name())
			newestMod = mod
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no merged subtitles in %s; run `storyreel merge` first", outputDir)
	}
	return newest, nil
}
