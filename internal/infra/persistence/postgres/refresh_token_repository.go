package postgres

import (
	"context"

	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository implements the repository.RefreshTokenRepository
// interface on the refresh_token column of the users table.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// ReplaceRefreshToken overwrites whatever token the user holds, invalidating it.
func (repo *refreshTokenRepository) ReplaceRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{"refresh_token": token})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to store refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SwapRefreshToken is a compare-and-swap in one UPDATE. Concurrent callers
// presenting the same expected value race on the row; only the first matches.
func (repo *refreshTokenRepository) SwapRefreshToken(ctx context.Context, userID uuid.UUID, expected, next string) error {
	if expected == "" {
		return repository.ErrRefreshTokenMismatch
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND refresh_token = ?", userID, expected).
		Updates(map[string]any{"refresh_token": next})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to rotate refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshToken empties the stored token. Clearing an empty token succeeds.
func (repo *refreshTokenRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{"refresh_token": ""})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
