package entities

import "time"

type AuditAction string

const (
	AuditActionSignup          AuditAction = "signup"
	AuditActionLogin           AuditAction = "login"
	AuditActionTwoFactorIssued AuditAction = "2fa_issued"
	AuditActionTwoFactorVerify AuditAction = "2fa_verify"
	AuditActionTokenVerify     AuditAction = "token_verify"
	AuditActionTokenRevoked    AuditAction = "token_revoked"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one authentication event. Events are append-only and
// pruned by the retention cleanup task.
type AuditEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Email     string      `gorm:"index;size:255" json:"email,omitempty"`
	Action    AuditAction `gorm:"index;size:50" json:"action"`
	Status    AuditStatus `gorm:"size:20" json:"status"`
	ErrorMsg  string      `gorm:"size:500" json:"error_msg,omitempty"`
	IPAddress string      `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
