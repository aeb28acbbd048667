package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"storyreel/internal/services/gemini"
	"storyreel/internal/services/transcribe"
	"storyreel/internal/srt"
	"storyreel/internal/textutil"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe every narration WAV into a repaired SRT file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := gemini.New(cmd.Context(), cfg.Gemini.APIKey)
			if err != nil {
				return err
			}
			service := transcribe.NewService(client, transcribe.Config{
				Model:   cfg.Gemini.TranscribeModel,
				DoneDir: cfg.Paths.DoneDir,
				Fix: srt.FixOptions{
					AutoFix:        cfg.Subtitles.AutoFix,
					BackupOriginal: cfg.Subtitles.BackupOriginal,
					MaxChars:       cfg.Subtitles.MaxLineChars,
					MaxWords:       cfg.Subtitles.MaxLineWords,
				},
			}, ctx.newLogger(cfg))

			entries, err := os.ReadDir(cfg.Paths.AudioDir)
			if err != nil {
				return fmt.Errorf("read audio directory: %w", err)
			}
			var names []string
			for _, entry := range entries {
				if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
					continue
				}
				names = append(names, entry.Name())
			}
			textutil.SortNatural(names)

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No narration audio to transcribe")
				return nil
			}
			for _, name := range names {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				base := strings.TrimSuffix(name, filepath.Ext(name))
				audioPath := filepath.Join(cfg.Paths.AudioDir, name)
				srtPath := filepath.Join(cfg.Paths.SubtitleDir, base+".srt")
				report, err := service.TranscribeFile(cmd.Context(), audioPath, srtPath)
				if err != nil {
					return fmt.Errorf("transcribe %s: %w", base, err)
				}
				state := "valid"
				if !report.Validation.IsValid {
					state = "needs review"
				} else if report.WasFixed {
					state = "repaired"
				}
				fmt.Fprintf(out, "Transcribed %s (%d subtitles, %s)\n", base, report.Validation.SubtitleCount, state)
			}
			return nil
		},
	}
}
