package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse/identity/internal/tokenban"
	"github.com/gatehouse/identity/internal/twofa"
)

type stubAuditTrimmer struct {
	gotRetention time.Duration
	deleted      int64
}

func (s *stubAuditTrimmer) DeleteOldEvents(retention time.Duration) (int64, error) {
	s.gotRetention = retention
	return s.deleted, nil
}

func TestTrimAuditTrailProcessor(t *testing.T) {
	t.Run("uses the configured retention", func(t *testing.T) {
		trimmer := &stubAuditTrimmer{deleted: 5}
		processor := TrimAuditTrailProcessor(trimmer)

		err := processor(context.Background(), TrimAuditTrailTask{RetentionDays: 7})
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, trimmer.gotRetention)
	})

	t.Run("defaults the retention when unset", func(t *testing.T) {
		trimmer := &stubAuditTrimmer{}
		processor := TrimAuditTrailProcessor(trimmer)

		err := processor(context.Background(), TrimAuditTrailTask{})
		require.NoError(t, err)
		assert.Equal(t, time.Duration(DefaultAuditRetentionDays)*24*time.Hour, trimmer.gotRetention)
	})

	t.Run("fails without a trimmer", func(t *testing.T) {
		processor := TrimAuditTrailProcessor(nil)
		assert.Error(t, processor(context.Background(), TrimAuditTrailTask{}))
	})
}

func TestSweepChallengesProcessor(t *testing.T) {
	store := twofa.NewMemoryStore(time.Minute)
	processor := SweepChallengesProcessor(store)

	require.NoError(t, processor(context.Background(), SweepChallengesTask{}))

	assert.Error(t, SweepChallengesProcessor(nil)(context.Background(), SweepChallengesTask{}))
}

func TestPruneRevocationsProcessor(t *testing.T) {
	store := tokenban.NewMemoryStore(time.Minute)
	processor := PruneRevocationsProcessor(store)

	require.NoError(t, processor(context.Background(), PruneRevocationsTask{}))

	assert.Error(t, PruneRevocationsProcessor(nil)(context.Background(), PruneRevocationsTask{}))
}
