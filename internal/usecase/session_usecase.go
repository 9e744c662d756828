// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/service"

	"github.com/google/uuid"
)

// SessionUsecase owns the session token lifecycle and is the only writer of
// a user's refresh token.
type SessionUsecase interface {
	// IssuePair mints a new access and refresh token and stores the refresh
	// token, replacing any previous value.
	IssuePair(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error)

	// VerifyAccess checks an access token's signature and expiry.
	VerifyAccess(ctx context.Context, accessToken string) (*service.Claims, error)

	// Rotate exchanges the currently stored refresh token for a new pair.
	// Every failure is reported as ErrRefreshTokenInvalid.
	Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error)

	// Revoke clears the stored refresh token so no further rotation succeeds.
	Revoke(ctx context.Context, userID uuid.UUID) error
}
