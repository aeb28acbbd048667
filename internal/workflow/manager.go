package workflow

import (
	"log/slog"
	"sync"
	"time"

	"storyreel/internal/config"
	"storyreel/internal/notifications"
	"storyreel/internal/queue"
	"storyreel/internal/stage"
	"storyreel/internal/synthesis"
	"storyreel/internal/transcription"
	"storyreel/internal/validation"
)

// StageSet bundles the concrete workflow handlers the manager orchestrates.
type StageSet struct {
	Synthesizer stage.Handler
	Transcriber stage.Handler
	Validator   stage.Handler
}

type pipelineStage struct {
	name             string
	handler          stage.Handler
	startStatus      queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
}

// Manager coordinates chapter processing using registered stage handlers.
type Manager struct {
	cfg      *config.Config
	store    *queue.Store
	logger   *slog.Logger
	notifier notifications.Service

	stages     []pipelineStage
	batchDelay time.Duration

	mu      sync.Mutex
	lastErr error
}

// NewManager constructs a workflow manager with default stage handlers.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Manager {
	stages := StageSet{
		Synthesizer: synthesis.NewSynthesizer(cfg, store, logger),
		Transcriber: transcription.NewTranscriber(cfg, store, logger),
		Validator:   validation.NewValidator(cfg, store, logger),
	}
	return NewManagerWithStages(cfg, store, logger, stages, notifications.NewService(cfg))
}

// NewManagerWithStages constructs a workflow manager with injected handlers
// and notifier (used in tests).
func NewManagerWithStages(cfg *config.Config, store *queue.Store, logger *slog.Logger, stages StageSet, notifier notifications.Service) *Manager {
	return &Manager{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		notifier: notifier,
		stages: []pipelineStage{
			{
				name:             "synthesis",
				handler:          stages.Synthesizer,
				startStatus:      queue.StatusPending,
				processingStatus: queue.StatusSynthesizing,
				doneStatus:       queue.StatusSynthesized,
			},
			{
				name:             "transcription",
				handler:          stages.Transcriber,
				startStatus:      queue.StatusSynthesized,
				processingStatus: queue.StatusTranscribing,
				doneStatus:       queue.StatusTranscribed,
			},
			{
				name:             "validation",
				handler:          stages.Validator,
				startStatus:      queue.StatusTranscribed,
				processingStatus: queue.StatusValidating,
				doneStatus:       queue.StatusValidated,
			},
		},
		batchDelay: time.Duration(cfg.Workflow.BatchDelaySeconds) * time.Second,
	}
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

// LastError returns the most recent chapter-level failure, if any.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) maxWorkers() int {
	workers := m.cfg.Workflow.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	return workers
}
