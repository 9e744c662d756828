package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/errors"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "accessToken"

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates requests with an access token and attaches
// the sanitized user to the echo context. It never mints or rotates tokens.
type AuthMiddleware struct {
	session  usecase.SessionUsecase
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Session  usecase.SessionUsecase
	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		session:  params.Session,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// Authenticate rejects the request unless it carries a valid access token
// belonging to an existing user.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractAccessToken(c)
		if token == "" {
			return domainerrors.ErrUnauthorized.WithDetails(domainerrors.ReasonTokenMissing)
		}

		ctx := c.Request().Context()
		claims, err := m.session.VerifyAccess(ctx, token)
		if err != nil {
			return domainerrors.ErrUnauthorized.WithDetails(rejectionReason(err))
		}

		userID := claims.UserID
		user, err := m.userRepo.FindSanitizedByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WithDetails("token subject no longer exists")
			}

			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Error("Failed to load authenticated user",
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)

			return errors.WithStack(err)
		}

		deliverycontext.SetCurrentUser(c, user)

		return next(c)
	}
}

// extractAccessToken prefers the cookie over the Authorization header.
func extractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	// The auth scheme is case-insensitive.
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(header[len(bearerPrefix):])
}

func rejectionReason(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.ErrorCode() {
		case domainerrors.ReasonTokenExpired, domainerrors.ReasonTokenMalformed, domainerrors.ReasonTokenInvalid:
			return appErr.ErrorCode()
		}
	}

	return domainerrors.ReasonTokenInvalid
}
