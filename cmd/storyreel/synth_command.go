package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storyreel/internal/services/gemini"
	"storyreel/internal/services/tts"
)

func newSynthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "synth",
		Short: "Synthesize narration audio for every chapter text without one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := gemini.New(cmd.Context(), cfg.Gemini.APIKey)
			if err != nil {
				return err
			}
			service := tts.NewService(client, tts.Config{
				Model:       cfg.Gemini.TTSModel,
				Voice:       cfg.TTS.Voice,
				Instruction: cfg.TTS.Instruction,
			}, ctx.newLogger(cfg))

			results, err := service.SynthesizeDir(cmd.Context(), cfg.Paths.TextDir, cfg.Paths.AudioDir)
			out := cmd.OutOrStdout()
			synthesized, skipped := 0, 0
			for _, result := range results {
				if result.Skipped {
					skipped++
					continue
				}
				synthesized++
				fmt.Fprintf(out, "Synthesized %s\n", result.Name)
			}
			fmt.Fprintf(out, "%d synthesized, %d skipped\n", synthesized, skipped)
			return err
		},
	}
}
