package tasks

import "time"

// completedTaskRetention is how long finished maintenance tasks stay
// queryable in the queue database. Failed runs also keep their payload.
const completedTaskRetention = 24 * time.Hour

// Config holds the shared worker-pool settings for the maintenance queue.
// Retry, backoff, and timeout policy is declared per queue on each task
// type's Config method.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to the queue.
	// Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks past their retention
	// are removed. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}
