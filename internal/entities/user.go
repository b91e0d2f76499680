package entities

import (
	"time"
)

// User is the relational representation of a registered account.
// Only the bcrypt hash of the password is ever stored.
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash      string    `gorm:"size:100" json:"-"`
	RequiresTwoFactor bool      `json:"requires_2fa"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
