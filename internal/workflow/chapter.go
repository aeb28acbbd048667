package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"storyreel/internal/logging"
	"storyreel/internal/queue"
	"storyreel/internal/services"
)

// processChapter drives one chapter through every stage it is eligible for.
// A stage failure stops the chapter but never the run.
func (m *Manager) processChapter(ctx context.Context, logger *slog.Logger, runID string, chapter *queue.Chapter) {
	chapter.RunID = runID
	chapterLogger := logger.With(
		logging.String(logging.FieldChapter, chapter.Name),
		logging.Int64(logging.FieldChapterID, chapter.ID))

	for _, stg := range m.stages {
		if ctx.Err() != nil {
			return
		}
		if chapter.Status != stg.startStatus {
			continue
		}

		requestID := uuid.NewString()
		stageCtx := services.WithRequestID(
			services.WithStage(
				services.WithChapterID(ctx, chapter.ID), stg.name), requestID)
		stageLogger := chapterLogger.With(logging.String(logging.FieldStage, stg.name))

		if err := m.executeStage(stageCtx, stageLogger, stg, chapter); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.setLastError(err)
			return
		}
		if chapter.Status != stg.doneStatus {
			// Review and other terminal statuses stop the pipeline here.
			return
		}
	}

	if chapter.Status == queue.StatusValidated {
		if err := m.notifier.NotifyChapterCompleted(ctx, chapter.Name); err != nil {
			chapterLogger.Warn("chapter notification failed", logging.Error(err))
		}
	}
}

func (m *Manager) executeStage(ctx context.Context, stageLogger *slog.Logger, stg pipelineStage, chapter *queue.Chapter) error {
	if stg.handler == nil {
		err := fmt.Errorf("stage %s missing handler", stg.name)
		chapter.SetFailed(err.Error())
		if updateErr := m.store.Update(ctx, chapter); updateErr != nil {
			stageLogger.Error("failed to persist missing handler failure", logging.Error(updateErr))
		}
		return err
	}

	stageStart := time.Now()
	m.setChapterProcessingState(chapter, stg.processingStatus)
	if err := m.store.Update(ctx, chapter); err != nil {
		return fmt.Errorf("persist processing transition: %w", err)
	}
	stageLogger.Info("stage started",
		logging.String("processing_status", string(stg.processingStatus)))

	if err := stg.handler.Prepare(ctx, chapter); err != nil {
		m.handleStageFailure(ctx, stageLogger, stg.name, chapter, err)
		return err
	}
	if err := m.store.Update(ctx, chapter); err != nil {
		return fmt.Errorf("persist stage preparation: %w", err)
	}

	if err := stg.handler.Execute(ctx, chapter); err != nil {
		if errors.Is(err, context.Canceled) {
			stageLogger.Debug("stage interrupted by shutdown")
			return err
		}
		m.handleStageFailure(ctx, stageLogger, stg.name, chapter, err)
		return err
	}

	if chapter.Status == stg.processingStatus || chapter.Status == "" {
		chapter.Status = stg.doneStatus
	}
	if err := m.store.Update(ctx, chapter); err != nil {
		return fmt.Errorf("persist stage result: %w", err)
	}
	stageLogger.Info("stage completed",
		logging.String("next_status", string(chapter.Status)),
		logging.Duration("stage_duration", time.Since(stageStart)))
	return nil
}

func (m *Manager) setChapterProcessingState(chapter *queue.Chapter, processing queue.Status) {
	chapter.Status = processing
	chapter.ErrorMessage = ""
	chapter.ProgressPercent = 0
	if chapter.ProgressStage == "" {
		chapter.ProgressStage = deriveStageLabel(processing)
	}
}

func deriveStageLabel(status queue.Status) string {
	switch status {
	case queue.StatusSynthesizing:
		return "Synthesizing"
	case queue.StatusTranscribing:
		return "Transcribing"
	case queue.StatusValidating:
		return "Validating"
	case queue.StatusMerged:
		return "Merged"
	default:
		return string(status)
	}
}

func (m *Manager) handleStageFailure(ctx context.Context, stageLogger *slog.Logger, stageName string, chapter *queue.Chapter, stageErr error) {
	message := strings.TrimSpace(stageErr.Error())
	if message == "" {
		message = fmt.Sprintf("%s failed without error detail", stageName)
	}

	status := services.FailureStatus(stageErr)
	if status == queue.StatusReview {
		chapter.SetReview(message)
	} else {
		chapter.SetFailed(message)
	}
	stageLogger.Error("stage failed",
		logging.String("resolved_status", string(chapter.Status)),
		logging.Alert("stage_failure"),
		logging.Error(stageErr))

	if err := m.store.Update(ctx, chapter); err != nil {
		if errors.Is(err, context.Canceled) {
			stageLogger.Debug("shutting down, could not persist stage failure")
		} else {
			stageLogger.Error("failed to persist stage failure", logging.Error(err))
		}
	}

	if err := m.notifier.NotifyError(ctx, stageErr, chapter.Name); err != nil {
		stageLogger.Warn("error notification failed", logging.Error(err))
	}
}
