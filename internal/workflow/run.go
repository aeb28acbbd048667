package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"storyreel/internal/logging"
	"storyreel/internal/queue"
)

// RunSummary reports what one pipeline run accomplished.
type RunSummary struct {
	RunID        string
	Scanned      int
	Processed    int
	Failed       int
	Review       int
	SubtitlePath string
	MarksPath    string
	VideoPath    string
	Elapsed      time.Duration
}

// Run executes one full pipeline pass: scan, per-chapter stages in bounded
// batches, timeline merge, and optional video render. A file lock serializes
// runs against the same project directory.
func (m *Manager) Run(ctx context.Context) (RunSummary, error) {
	start := time.Now()
	summary := RunSummary{RunID: uuid.NewString()}
	logger := m.logger.With(logging.String(logging.FieldCorrelationID, summary.RunID))

	lock := flock.New(filepath.Join(m.cfg.Paths.LogDir, "storyreel.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return summary, errors.New("another run is already in progress")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if reset, err := m.store.ResetStuckProcessing(ctx); err != nil {
		logger.Warn("could not reset stuck chapters", logging.Error(err))
	} else if reset > 0 {
		logger.Info("reset stuck chapters from a previous run", logging.Int64("count", reset))
	}

	created, err := m.ScanTextDir(ctx)
	if err != nil {
		return summary, err
	}
	summary.Scanned = len(created)

	chapters, err := m.store.List(ctx,
		queue.StatusPending, queue.StatusSynthesized, queue.StatusTranscribed)
	if err != nil {
		return summary, err
	}
	if len(chapters) > 0 {
		if err := m.notifier.NotifyRunStarted(ctx, len(chapters)); err != nil {
			logger.Warn("run start notification failed", logging.Error(err))
		}
	}

	m.runBatches(ctx, logger, summary.RunID, chapters)
	if err := ctx.Err(); err != nil {
		summary.Elapsed = time.Since(start)
		return summary, err
	}

	for _, chapter := range chapters {
		switch chapter.Status {
		case queue.StatusValidated:
			summary.Processed++
		case queue.StatusFailed:
			summary.Failed++
		case queue.StatusReview:
			summary.Review++
		}
	}

	if err := m.finishRun(ctx, logger, &summary); err != nil {
		summary.Elapsed = time.Since(start)
		return summary, err
	}

	summary.Elapsed = time.Since(start)
	logger.Info("run complete",
		logging.Int("processed", summary.Processed),
		logging.Int("failed", summary.Failed),
		logging.Int("review", summary.Review),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// runBatches drives the chapters through the pipeline in groups of at most
// maxWorkers, pausing between groups so the speech API quota can recover.
func (m *Manager) runBatches(ctx context.Context, logger *slog.Logger, runID string, chapters []*queue.Chapter) {
	workers := m.maxWorkers()
	for batchStart := 0; batchStart < len(chapters); batchStart += workers {
		if ctx.Err() != nil {
			return
		}
		batchEnd := batchStart + workers
		if batchEnd > len(chapters) {
			batchEnd = len(chapters)
		}

		var wg sync.WaitGroup
		for _, chapter := range chapters[batchStart:batchEnd] {
			wg.Add(1)
			go func(chapter *queue.Chapter) {
				defer wg.Done()
				m.processChapter(ctx, logger, runID, chapter)
			}(chapter)
		}
		wg.Wait()

		if batchEnd < len(chapters) && m.batchDelay > 0 {
			logger.Info("pausing between batches",
				logging.Duration("delay", m.batchDelay),
				logging.Int("remaining", len(chapters)-batchEnd))
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.batchDelay):
			}
		}
	}
}
