// Package audit records authentication events for the operator trail.
// Logging is best-effort: a failed write never fails the request that
// triggered it.
package audit

import (
	"log"
	"time"

	"github.com/gatehouse/identity/internal/database/audit"
	"github.com/gatehouse/identity/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogAuth records an authentication event. A nil err marks the event
// successful; otherwise the (truncated) error text is stored with it.
func (s *Service) LogAuth(email string, action entities.AuditAction, ipAddr string, err error) {
	event := &entities.AuditEvent{
		Email:     email,
		Action:    action,
		IPAddress: ipAddr,
		Status:    entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(email string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(email, limit, offset)
}

// GetEventsByAction retrieves audit events filtered by action.
func (s *Service) GetEventsByAction(action entities.AuditAction, email string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByAction(action, email, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
