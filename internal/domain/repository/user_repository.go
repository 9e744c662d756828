// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserConflict is returned when an email or username is already taken.
	ErrUserConflict = errors.New("user with email or username already exists")
)

// UserRepository persists user identity, profile and credential fields.
// The refresh token field is owned by RefreshTokenRepository.
type UserRepository interface {
	// FindByID retrieves a user including secret fields. Reads go to the primary.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindSanitizedByID retrieves a user with password hash and refresh token excluded.
	FindSanitizedByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmailOrUsername matches a user whose email equals email or whose
	// username equals username. Empty arguments are ignored.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)

	// FindByUsername retrieves a user by lower-cased username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user and fills its ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// UpdateAccount changes the editable account details.
	UpdateAccount(ctx context.Context, id uuid.UUID, update entity.AccountUpdate) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateAvatar replaces the avatar URL.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error

	// UpdateCoverImage replaces the cover image URL.
	UpdateCoverImage(ctx context.Context, id uuid.UUID, coverURL string) error
}
