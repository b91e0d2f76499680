package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// RevocationPruner drops banned-token entries whose tokens have expired
// anyway. A pruned entry can never matter again: the token it referred to
// no longer verifies.
type RevocationPruner interface {
	PruneExpired(ctx context.Context) (int, error)
}

// PruneRevocationsTask removes banned-token entries past their retention.
type PruneRevocationsTask struct{}

// Config returns the queue configuration for revocation prune tasks.
func (t PruneRevocationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prune_revocations",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   completedTaskRetention,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PruneRevocationsProcessor creates a processor function for PruneRevocationsTask.
func PruneRevocationsProcessor(pruner RevocationPruner) backlite.QueueProcessor[PruneRevocationsTask] {
	return func(ctx context.Context, _ PruneRevocationsTask) error {
		if pruner == nil {
			return fmt.Errorf("revocation pruner not configured")
		}

		pruned, err := pruner.PruneExpired(ctx)
		if err != nil {
			return fmt.Errorf("prune revocations: %w", err)
		}

		if pruned > 0 {
			log.Printf("[TASK] Pruned %d expired token revocations", pruned)
		}
		return nil
	}
}

// NewPruneRevocationsQueue creates a backlite queue for revocation prune tasks.
func NewPruneRevocationsQueue(pruner RevocationPruner) backlite.Queue {
	return backlite.NewQueue(PruneRevocationsProcessor(pruner))
}
