package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxAttempts int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		MaxAttempts:     maxAttempts,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
		CleanupInterval: time.Hour,
	})
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := rl.Allow("1.2.3.4", "johndoe@mail.com")
		assert.True(t, allowed)
		rl.RecordFailure("1.2.3.4", "johndoe@mail.com")
	}

	allowed, _ := rl.Allow("1.2.3.4", "johndoe@mail.com")
	assert.True(t, allowed)
}

func TestRateLimiter_LocksOutAfterMaxFailures(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.RecordFailure("1.2.3.4", "johndoe@mail.com")
	}

	allowed, retryAfter := rl.Allow("1.2.3.4", "johndoe@mail.com")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.RecordFailure("1.2.3.4", "johndoe@mail.com")
	}

	// Different IP, same email.
	allowed, _ := rl.Allow("5.6.7.8", "johndoe@mail.com")
	assert.True(t, allowed)

	// Same IP, different email.
	allowed, _ = rl.Allow("1.2.3.4", "other@mail.com")
	assert.True(t, allowed)
}

func TestRateLimiter_SuccessClearsTracking(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "johndoe@mail.com")
	rl.RecordFailure("1.2.3.4", "johndoe@mail.com")
	rl.RecordSuccess("1.2.3.4", "johndoe@mail.com")

	for i := 0; i < 2; i++ {
		allowed, _ := rl.Allow("1.2.3.4", "johndoe@mail.com")
		assert.True(t, allowed)
		rl.RecordFailure("1.2.3.4", "johndoe@mail.com")
	}
}
