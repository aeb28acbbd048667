package workflow

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"storyreel/internal/logging"
	"storyreel/internal/queue"
	"storyreel/internal/render"
	"storyreel/internal/timeline"
)

// finishRun merges every retired chapter onto one timeline and, when
// rendering is enabled, composites the final video. Chapters that made it
// into the merged output advance to the merged status.
func (m *Manager) finishRun(ctx context.Context, logger *slog.Logger, summary *RunSummary) error {
	units, err := timeline.CollectUnits(m.cfg.Paths.DoneDir, m.cfg.Paths.SubtitleDir)
	if err != nil || len(units) == 0 {
		logger.Info("nothing to merge yet", logging.String("done_dir", m.cfg.Paths.DoneDir))
		return nil
	}

	result, err := timeline.MergeDirs(m.cfg.Paths.DoneDir, m.cfg.Paths.SubtitleDir, m.cfg.Paths.OutputDir, timeline.Options{
		GapSeconds: m.cfg.Workflow.GapSeconds,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	summary.SubtitlePath = result.SubtitlePath
	summary.MarksPath = result.MarksPath

	m.markMerged(ctx, logger, result.Reports)

	mergedName := strings.TrimSuffix(filepath.Base(result.SubtitlePath), filepath.Ext(result.SubtitlePath))
	total := time.Duration(result.Timeline.TotalDuration * float64(time.Second))
	if err := m.notifier.NotifyMergeCompleted(ctx, mergedName+".srt", len(units), total); err != nil {
		logger.Warn("merge notification failed", logging.Error(err))
	}

	if !m.cfg.Render.Enabled {
		return nil
	}

	renderer := render.NewService(render.Config{
		FFmpegBinary: m.cfg.FFmpegBinary(),
		ImagePath:    m.cfg.Render.ImagePath,
		Width:        m.cfg.Render.Width,
		Height:       m.cfg.Render.Height,
		FontSize:     m.cfg.Render.FontSize,
		FadeSeconds:  m.cfg.Render.FadeSeconds,
	}, m.logger)
	audioPath := filepath.Join(m.cfg.Paths.OutputDir, mergedName+".wav")
	segments := render.SegmentsFromMerge(units, result.Reports, m.cfg.Workflow.GapSeconds)
	if err := renderer.AssembleAudio(ctx, segments, audioPath); err != nil {
		return err
	}
	videoPath := filepath.Join(m.cfg.Paths.OutputDir, mergedName+".mp4")
	if err := renderer.RenderVideo(ctx, render.Request{
		AudioPath:       audioPath,
		SubtitlePath:    result.SubtitlePath,
		DurationSeconds: result.Timeline.TotalDuration,
		OutputPath:      videoPath,
	}); err != nil {
		return err
	}
	summary.VideoPath = videoPath
	if err := m.notifier.NotifyRenderCompleted(ctx, videoPath); err != nil {
		logger.Warn("render notification failed", logging.Error(err))
	}
	return nil
}

// markMerged advances chapters whose subtitles landed in the merged output.
func (m *Manager) markMerged(ctx context.Context, logger *slog.Logger, reports []timeline.UnitReport) {
	for _, report := range reports {
		if report.Skipped {
			continue
		}
		chapter, err := m.store.FindByName(ctx, report.Name)
		if err != nil || chapter == nil {
			continue
		}
		if chapter.Status != queue.StatusValidated {
			continue
		}
		chapter.Status = queue.StatusMerged
		chapter.SetProgress("Merged", "Included in merged timeline", 100)
		if err := m.store.Update(ctx, chapter); err != nil {
			logger.Warn("could not mark chapter merged",
				logging.String(logging.FieldChapter, chapter.Name),
				logging.Error(err))
		}
	}
}
