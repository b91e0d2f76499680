package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ChallengeSweeper removes expired two-factor challenges from a store.
// Redis-backed stores expire entries on their own; only the in-memory
// store needs sweeping.
type ChallengeSweeper interface {
	PruneExpired(ctx context.Context) (int, error)
}

// SweepChallengesTask drops two-factor challenges that have outlived
// their TTL.
type SweepChallengesTask struct{}

// Config returns the queue configuration for challenge sweep tasks.
func (t SweepChallengesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "sweep_challenges",
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

// SweepChallengesProcessor creates a processor function for SweepChallengesTask.
func SweepChallengesProcessor(sweeper ChallengeSweeper) backlite.QueueProcessor[SweepChallengesTask] {
	return func(ctx context.Context, _ SweepChallengesTask) error {
		if sweeper == nil {
			return fmt.Errorf("challenge sweeper not configured")
		}

		pruned, err := sweeper.PruneExpired(ctx)
		if err != nil {
			return fmt.Errorf("sweep challenges: %w", err)
		}

		if pruned > 0 {
			log.Printf("[TASK] Swept %d expired two-factor challenges", pruned)
		}
		return nil
	}
}

// NewSweepChallengesQueue creates a backlite queue for challenge sweep tasks.
func NewSweepChallengesQueue(sweeper ChallengeSweeper) backlite.Queue {
	return backlite.NewQueue(SweepChallengesProcessor(sweeper))
}
