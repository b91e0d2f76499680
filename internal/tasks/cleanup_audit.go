package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetentionDays bounds the audit trail when a trim task
// carries no retention of its own.
const DefaultAuditRetentionDays = 30

// AuditTrimmer deletes audit events older than a retention window.
type AuditTrimmer interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// TrimAuditTrailTask removes audit events past the retention the scheduler
// configured it with.
type TrimAuditTrailTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for audit trim tasks.
func (t TrimAuditTrailTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "trim_audit_trail",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   completedTaskRetention,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// TrimAuditTrailProcessor creates a processor function for TrimAuditTrailTask.
func TrimAuditTrailProcessor(trimmer AuditTrimmer) backlite.QueueProcessor[TrimAuditTrailTask] {
	return func(ctx context.Context, task TrimAuditTrailTask) error {
		if trimmer == nil {
			return fmt.Errorf("audit trimmer not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = DefaultAuditRetentionDays
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := trimmer.DeleteOldEvents(retention)
		if err != nil {
			return fmt.Errorf("trim audit trail: %w", err)
		}

		log.Printf("[TASK] Trimmed %d audit events older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewTrimAuditTrailQueue creates a backlite queue for audit trim tasks.
func NewTrimAuditTrailQueue(trimmer AuditTrimmer) backlite.Queue {
	return backlite.NewQueue(TrimAuditTrailProcessor(trimmer))
}
