// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo    repository.UserRepository
	refreshRepo repository.RefreshTokenRepository
	tokens      service.TokenService
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for the session service, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo:    params.UserRepo,
		refreshRepo: params.RefreshTokenRepo,
		tokens:      params.TokenService,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *sessionService) IssuePair(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to load user for token issuance", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "load user")
	}

	if _, ok := user.RefreshState().Transition(entity.RefreshEventLogin); !ok {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "login transition rejected")
	}

	pair, err := srv.mintPair(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to sign token pair", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "sign tokens")
	}

	if err := srv.refreshRepo.ReplaceRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		srv.log(ctx).Error("Failed to store refresh token", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "store refresh token")
	}

	srv.log(ctx).Debug("Issued token pair", slog.Any("user_id", userID))

	return pair, nil
}

func (srv *sessionService) VerifyAccess(_ context.Context, accessToken string) (*service.Claims, error) {
	claims, err := srv.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, errors.WithMessage(err, "verify access token")
	}

	return claims, nil
}

// Rotate succeeds only when the presented token is signature-valid, unexpired
// and equal to the stored value. The new value is written with a
// compare-and-swap against the presented one, so of several concurrent
// rotations with the same token exactly one wins.
func (srv *sessionService) Rotate(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	claims, err := srv.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, srv.rejectRotation(ctx, uuid.Nil, "token verification failed", err)
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, srv.rejectRotation(ctx, claims.UserID, "user lookup failed", err)
	}

	if _, ok := user.RefreshState().Transition(entity.RefreshEventRotate); !ok {
		return nil, srv.rejectRotation(ctx, user.ID, "no active refresh token", nil)
	}

	if subtle.ConstantTimeCompare([]byte(refreshToken), []byte(user.RefreshToken)) != 1 {
		return nil, srv.rejectRotation(ctx, user.ID, "refresh token does not match stored value", nil)
	}

	pair, err := srv.mintPair(user.ID)
	if err != nil {
		return nil, srv.rejectRotation(ctx, user.ID, "token signing failed", err)
	}

	if err := srv.refreshRepo.SwapRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		return nil, srv.rejectRotation(ctx, user.ID, "refresh token swap failed", err)
	}

	srv.log(ctx).Debug("Rotated refresh token", slog.Any("user_id", user.ID))

	return pair, nil
}

// rejectRotation logs why a rotation failed and returns the single error kind
// callers are allowed to see.
func (srv *sessionService) rejectRotation(ctx context.Context, userID uuid.UUID, reason string, cause error) error {
	attrs := []any{slog.String("reason", reason)}
	if userID != uuid.Nil {
		attrs = append(attrs, slog.Any("user_id", userID))
	}

	level := slog.LevelInfo
	if cause != nil {
		attrs = append(attrs, slog.Any("error", cause))
		if !isExpectedRotationFailure(cause) {
			level = slog.LevelError
		}
	}
	srv.log(ctx).Log(ctx, level, "Refresh token rotation rejected", attrs...)

	return errors.WithStack(domainerrors.ErrRefreshTokenInvalid)
}

func isExpectedRotationFailure(err error) bool {
	return errors.Is(err, domainerrors.ErrTokenExpired) ||
		errors.Is(err, domainerrors.ErrTokenInvalid) ||
		errors.Is(err, domainerrors.ErrTokenMalformed) ||
		errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrRefreshTokenMismatch)
}

func (srv *sessionService) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := srv.refreshRepo.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "revoke refresh token")
		}
		srv.log(ctx).Error("Failed to clear refresh token", slog.Any("user_id", userID), slog.Any("error", err))

		return errors.Wrap(err, "revoke refresh token")
	}

	srv.log(ctx).Debug("Revoked refresh token", slog.Any("user_id", userID))

	return nil
}

func (srv *sessionService) mintPair(userID uuid.UUID) (*entity.TokenPair, error) {
	access, err := srv.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}

	refresh, err := srv.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{
		UserID:           userID,
		AccessToken:      access.Value,
		RefreshToken:     refresh.Value,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}
