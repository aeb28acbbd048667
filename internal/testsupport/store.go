package testsupport

import (
	"context"
	"testing"

	"storyreel/internal/config"
	"storyreel/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewChapter creates a new chapter row for tests using the provided store.
func NewChapter(t testing.TB, store *queue.Store, name, textPath string) *queue.Chapter {
	t.Helper()

	chapter, err := store.NewChapter(context.Background(), name, textPath)
	if err != nil {
		t.Fatalf("store.NewChapter: %v", err)
	}
	return chapter
}
