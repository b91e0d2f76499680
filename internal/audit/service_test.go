package audit

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbaudit "github.com/gatehouse/identity/internal/database/audit"
	"github.com/gatehouse/identity/internal/entities"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	return NewService(dbaudit.NewRepository(db))
}

func TestService_Log(t *testing.T) {
	service := setupTestService(t)

	require.NoError(t, service.Log(&entities.AuditEvent{
		Email:  "a@x.com",
		Action: entities.AuditActionSignup,
		Status: entities.AuditStatusSuccess,
	}))

	events, total, err := service.GetEvents("a@x.com", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditActionSignup, events[0].Action)
}

func TestService_LogAuth(t *testing.T) {
	service := setupTestService(t)

	service.LogAuth("a@x.com", entities.AuditActionLogin, "1.2.3.4", nil)
	service.LogAuth("a@x.com", entities.AuditActionLogin, "1.2.3.4", errors.New("incorrect credentials"))

	// LogAuth writes in the background.
	require.Eventually(t, func() bool {
		_, total, err := service.GetEvents("a@x.com", 10, 0)
		return err == nil && total == 2
	}, 2*time.Second, 10*time.Millisecond)

	events, _, err := service.GetEventsByAction(entities.AuditActionLogin, "a@x.com", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var failed, succeeded int
	for _, event := range events {
		assert.Equal(t, "1.2.3.4", event.IPAddress)
		switch event.Status {
		case entities.AuditStatusFailed:
			failed++
			assert.Equal(t, "incorrect credentials", event.ErrorMsg)
		case entities.AuditStatusSuccess:
			succeeded++
			assert.Empty(t, event.ErrorMsg)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, succeeded)
}

func TestService_LogAuth_TruncatesLongErrors(t *testing.T) {
	service := setupTestService(t)

	service.LogAuth("a@x.com", entities.AuditActionLogin, "1.2.3.4", errors.New(strings.Repeat("x", 600)))

	require.Eventually(t, func() bool {
		_, total, err := service.GetEvents("a@x.com", 10, 0)
		return err == nil && total == 1
	}, 2*time.Second, 10*time.Millisecond)

	events, _, err := service.GetEvents("a@x.com", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Len(t, events[0].ErrorMsg, 500)
	assert.True(t, strings.HasSuffix(events[0].ErrorMsg, "..."))
}

func TestService_DeleteOldEvents(t *testing.T) {
	service := setupTestService(t)

	require.NoError(t, service.Log(&entities.AuditEvent{
		Email:     "a@x.com",
		Action:    entities.AuditActionLogin,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}))
	require.NoError(t, service.Log(&entities.AuditEvent{
		Email:  "a@x.com",
		Action: entities.AuditActionLogin,
		Status: entities.AuditStatusSuccess,
	}))

	deleted, err := service.DeleteOldEvents(24 * time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}
