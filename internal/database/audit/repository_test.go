package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gatehouse/identity/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	return NewRepository(db)
}

func TestRepository_LogEvent(t *testing.T) {
	repo := setupTestRepo(t)

	event := &entities.AuditEvent{
		Email:  "a@x.com",
		Action: entities.AuditActionLogin,
		Status: entities.AuditStatusSuccess,
	}
	require.NoError(t, repo.LogEvent(event))

	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := setupTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			Email:  "a@x.com",
			Action: entities.AuditActionLogin,
			Status: entities.AuditStatusFailed,
		}))
	}
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		Email:  "b@x.com",
		Action: entities.AuditActionSignup,
		Status: entities.AuditStatusSuccess,
	}))

	t.Run("all accounts", func(t *testing.T) {
		events, total, err := repo.GetEvents("", 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, events, 4)
	})

	t.Run("filtered by email", func(t *testing.T) {
		events, total, err := repo.GetEvents("a@x.com", 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, events, 3)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents("", 2, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, events, 2)
	})

	t.Run("filtered by action", func(t *testing.T) {
		events, total, err := repo.GetEventsByAction(entities.AuditActionSignup, "", 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, events, 1)
		assert.Equal(t, "b@x.com", events[0].Email)
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := setupTestRepo(t)

	old := &entities.AuditEvent{
		Email:     "a@x.com",
		Action:    entities.AuditActionLogin,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.LogEvent(old))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		Email:  "a@x.com",
		Action: entities.AuditActionLogin,
		Status: entities.AuditStatusSuccess,
	}))

	deleted, err := repo.DeleteOldEvents(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, total, err := repo.GetEvents("", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
