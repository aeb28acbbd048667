package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"storyreel/internal/config"
	"storyreel/internal/srt"
	"storyreel/internal/textutil"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	var noBackup bool
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Validate and repair SRT files in place",
		Long: "Validate and repair SRT files in place. With no argument every file in the\n" +
			"subtitle directory is processed; a file argument fixes just that file and a\n" +
			"directory argument fixes every .srt inside it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := cfg.Paths.SubtitleDir
			if len(args) == 1 {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				target = expanded
			}

			paths, err := collectSubtitlePaths(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(paths) == 0 {
				fmt.Fprintln(out, "No subtitle files found")
				return nil
			}

			opts := srt.FixOptions{
				AutoFix:        !checkOnly && cfg.Subtitles.AutoFix,
				BackupOriginal: !noBackup && cfg.Subtitles.BackupOriginal,
				MaxChars:       cfg.Subtitles.MaxLineChars,
				MaxWords:       cfg.Subtitles.MaxLineWords,
			}

			invalid := 0
			for _, path := range paths {
				report := srt.ValidateAndFix(path, opts)
				switch {
				case report.Validation.IsValid && report.WasFixed:
					fmt.Fprintf(out, "%s: repaired (%d subtitles)\n", filepath.Base(path), report.Validation.SubtitleCount)
				case report.Validation.IsValid:
					fmt.Fprintf(out, "%s: valid (%d subtitles)\n", filepath.Base(path), report.Validation.SubtitleCount)
				default:
					invalid++
					fmt.Fprintf(out, "%s: INVALID\n", filepath.Base(path))
					for _, problem := range report.Validation.Errors {
						fmt.Fprintf(out, "  - %s\n", problem)
					}
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d subtitle files still invalid", invalid, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip writing backup copies before repair")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Report problems without modifying files")
	return cmd
}

func collectSubtitlePaths(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("inspect %q: %w", target, err)
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", target, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".srt") {
			continue
		}
		names = append(names, entry.Name())
	}
	textutil.SortNatural(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(target, name))
	}
	return paths, nil
}
