package workflow

import (
	"context"

	"storyreel/internal/queue"
	"storyreel/internal/stage"
)

// Health aggregates stage readiness and queue counters.
type Health struct {
	Stages []stage.Health
	Queue  queue.HealthSummary
	Ready  bool
}

// HealthCheck runs every stage's health check and summarizes the queue.
func (m *Manager) HealthCheck(ctx context.Context) (Health, error) {
	health := Health{Ready: true}
	for _, stg := range m.stages {
		if stg.handler == nil {
			health.Stages = append(health.Stages, stage.Unhealthy(stg.name, "handler not configured"))
			health.Ready = false
			continue
		}
		result := stg.handler.HealthCheck(ctx)
		if !result.Ready {
			health.Ready = false
		}
		health.Stages = append(health.Stages, result)
	}

	summary, err := m.store.Health(ctx)
	if err != nil {
		return health, err
	}
	health.Queue = summary
	return health, nil
}
