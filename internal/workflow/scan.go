package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"storyreel/internal/logging"
	"storyreel/internal/queue"
	"storyreel/internal/services"
	"storyreel/internal/textutil"
)

// ScanTextDir enqueues every chapter text that has no queue row yet and
// returns the newly created chapters in natural order. Chapters already in
// the queue keep their current status.
func (m *Manager) ScanTextDir(ctx context.Context) ([]*queue.Chapter, error) {
	entries, err := os.ReadDir(m.cfg.Paths.TextDir)
	if err != nil {
		return nil, services.Wrap(
			services.ErrConfiguration, "workflow", "scan text dir",
			"Text directory unreadable; check paths.text_dir", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	textutil.SortNatural(names)

	var created []*queue.Chapter
	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		existing, err := m.store.FindByName(ctx, base)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		chapter, err := m.store.NewChapter(ctx, base, filepath.Join(m.cfg.Paths.TextDir, name))
		if err != nil {
			return created, err
		}
		created = append(created, chapter)
		m.logger.Info("chapter enqueued",
			logging.String("chapter", base),
			logging.Int64("chapter_id", chapter.ID))
	}
	return created, nil
}
