package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/gatehouse/identity/internal/email"
	"github.com/gatehouse/identity/internal/tasks"
	"github.com/gatehouse/identity/internal/token"
	"github.com/gatehouse/identity/internal/tokenban"
	"github.com/gatehouse/identity/internal/twofa"
	"github.com/gatehouse/identity/internal/userstore"
)

// =============================================================================
// Stores
// =============================================================================

// User store implementations
var _ userstore.Store = (*userstore.MemoryStore)(nil)
var _ userstore.Store = (*userstore.GormStore)(nil)

// Banned token store implementations
var _ tokenban.Store = (*tokenban.MemoryStore)(nil)
var _ tokenban.Store = (*tokenban.RedisStore)(nil)

// Two-factor challenge store implementations
var _ twofa.Store = (*twofa.MemoryStore)(nil)
var _ twofa.Store = (*twofa.RedisStore)(nil)

// =============================================================================
// Capabilities
// =============================================================================

// Token service implementations
var _ token.Service = (*token.JWTService)(nil)

// Email client implementations
var _ email.Client = (*email.LogClient)(nil)

// =============================================================================
// Maintenance
// =============================================================================

// Challenge sweepers
var _ tasks.ChallengeSweeper = (*twofa.MemoryStore)(nil)
var _ tasks.ChallengeSweeper = (*twofa.RedisStore)(nil)

// Revocation pruners
var _ tasks.RevocationPruner = (*tokenban.MemoryStore)(nil)
var _ tasks.RevocationPruner = (*tokenban.RedisStore)(nil)
