package repository

import (
	"context"

	"vidtube/internal/errors"

	"github.com/google/uuid"
)

// ErrRefreshTokenMismatch is returned by SwapRefreshToken when the stored
// value no longer equals the expected one.
var ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")

// RefreshTokenRepository owns the single refresh token field of a user.
// Each method is one atomic write against one user record.
type RefreshTokenRepository interface {
	// ReplaceRefreshToken unconditionally overwrites the stored token.
	ReplaceRefreshToken(ctx context.Context, userID uuid.UUID, token string) error

	// SwapRefreshToken stores next only if the stored value equals expected.
	// Exactly one of several concurrent swaps with the same expected value wins.
	SwapRefreshToken(ctx context.Context, userID uuid.UUID, expected, next string) error

	// ClearRefreshToken empties the stored token.
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
}
