package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gatehouse/identity/internal/domain"
	"github.com/gatehouse/identity/internal/entities"
	"github.com/gatehouse/identity/internal/security"
)

// GormStore is the relational user directory. Uniqueness is enforced by the
// unique index on the email column, so concurrent duplicate signups resolve
// to exactly one insert.
type GormStore struct {
	db     *gorm.DB
	hasher *security.Hasher
}

// NewGormStore creates a user directory backed by the given database.
func NewGormStore(db *gorm.DB, hasher *security.Hasher) *GormStore {
	return &GormStore{db: db, hasher: hasher}
}

func (s *GormStore) AddUser(ctx context.Context, user domain.User) error {
	hash, err := s.hasher.Hash(user.Password.Raw())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	row := &entities.User{
		Email:             user.Email.String(),
		PasswordHash:      hash,
		RequiresTwoFactor: user.RequiresTwoFactor,
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormStore) GetUser(ctx context.Context, email domain.Email) (domain.User, error) {
	row, err := s.findByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		Email:             email,
		RequiresTwoFactor: row.RequiresTwoFactor,
	}, nil
}

func (s *GormStore) ValidateCredentials(ctx context.Context, email domain.Email, password domain.Password) error {
	row, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(row.PasswordHash, password.Raw()); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}

func (s *GormStore) findByEmail(ctx context.Context, email domain.Email) (*entities.User, error) {
	var row entities.User
	err := s.db.WithContext(ctx).Where("email = ?", email.String()).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &row, nil
}

// isUniqueViolation catches the sqlite driver's constraint error, which gorm
// does not always translate to ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
