package stage

import (
	"context"

	"storyreel/internal/queue"
)

// Handler describes the contract the workflow manager needs from each stage.
type Handler interface {
	Prepare(context.Context, *queue.Chapter) error
	Execute(context.Context, *queue.Chapter) error
	HealthCheck(context.Context) Health
}
