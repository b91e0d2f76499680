// Package scheduler drives the periodic maintenance work: sweeping expired
// two-factor challenges, pruning stale token revocations, and trimming the
// audit trail past its retention. Each tick enqueues tasks on the queue
// rather than doing the work inline, so retries and timeouts follow the
// queue's policy.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/gatehouse/identity/internal/tasks"
)

// CleanupScheduler enqueues the maintenance tasks on a cron schedule.
type CleanupScheduler struct {
	client             *tasks.Client
	schedule           string
	auditRetentionDays int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCleanupScheduler creates a scheduler that fires on the given five-field
// cron schedule.
func NewCleanupScheduler(client *tasks.Client, schedule string, auditRetentionDays int) *CleanupScheduler {
	return &CleanupScheduler{
		client:             client,
		schedule:           schedule,
		auditRetentionDays: auditRetentionDays,
		cron:               cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. A missing task client disables it.
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.client == nil {
		log.Printf("Cleanup scheduler: task queue not configured, disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.enqueueCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Cleanup scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Cleanup scheduler: stopped")
}

// RunNow enqueues the maintenance tasks immediately.
func (s *CleanupScheduler) RunNow() {
	s.enqueueCleanup()
}

func (s *CleanupScheduler) enqueueCleanup() {
	if _, err := s.client.Add(tasks.SweepChallengesTask{}).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue challenge sweep: %v", err)
	}
	if _, err := s.client.Add(tasks.PruneRevocationsTask{}).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue revocation prune: %v", err)
	}
	if _, err := s.client.Add(tasks.TrimAuditTrailTask{RetentionDays: s.auditRetentionDays}).Save(); err != nil {
		log.Printf("Cleanup scheduler: failed to enqueue audit trim: %v", err)
	}
}
