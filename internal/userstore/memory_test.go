package userstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse/identity/internal/domain"
	"github.com/gatehouse/identity/internal/security"
)

func testUser(t *testing.T, email, password string, requires2FA bool) domain.User {
	t.Helper()
	parsedEmail, err := domain.ParseEmail(email)
	require.NoError(t, err)
	parsedPassword, err := domain.ParsePassword(password)
	require.NoError(t, err)
	return domain.User{
		Email:             parsedEmail,
		Password:          parsedPassword,
		RequiresTwoFactor: requires2FA,
	}
}

func TestMemoryStore_AddUser(t *testing.T) {
	store := NewMemoryStore(security.NewHasher(4))
	ctx := context.Background()
	user := testUser(t, "johndoe@mail.com", "plsdonthackme", false)

	require.NoError(t, store.AddUser(ctx, user))

	// Second add with the same email fails regardless of other fields.
	again := testUser(t, "johndoe@mail.com", "differentpass", true)
	assert.ErrorIs(t, store.AddUser(ctx, again), ErrUserExists)
}

func TestMemoryStore_GetUser(t *testing.T) {
	store := NewMemoryStore(security.NewHasher(4))
	ctx := context.Background()
	user := testUser(t, "johndoe@mail.com", "plsdonthackme", true)
	require.NoError(t, store.AddUser(ctx, user))

	got, err := store.GetUser(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.True(t, got.RequiresTwoFactor)
	// No password material leaves the store.
	assert.Empty(t, got.Password.Raw())

	missing, err := domain.ParseEmail("nonexistent@mail.com")
	require.NoError(t, err)
	_, err = store.GetUser(ctx, missing)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryStore_ValidateCredentials(t *testing.T) {
	store := NewMemoryStore(security.NewHasher(4))
	ctx := context.Background()
	user := testUser(t, "johndoe@mail.com", "plsdonthackme", false)
	require.NoError(t, store.AddUser(ctx, user))

	assert.NoError(t, store.ValidateCredentials(ctx, user.Email, user.Password))

	wrong, err := domain.ParsePassword("wrongpassword")
	require.NoError(t, err)
	assert.ErrorIs(t, store.ValidateCredentials(ctx, user.Email, wrong), ErrInvalidCredentials)

	missing, err := domain.ParseEmail("nonexistent@mail.com")
	require.NoError(t, err)
	assert.ErrorIs(t, store.ValidateCredentials(ctx, missing, user.Password), ErrUserNotFound)
}
