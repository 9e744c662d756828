package service

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID        `json:"-"`
	Type   entity.TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// SignedToken is a freshly minted token and the instant it stops being valid.
type SignedToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService signs and verifies access and refresh tokens. It holds no
// state beyond its secrets and lifetimes.
type TokenService interface {
	// GenerateAccessToken signs a short-lived access token for userID.
	GenerateAccessToken(userID uuid.UUID) (*SignedToken, error)

	// GenerateRefreshToken signs a long-lived refresh token for userID.
	GenerateRefreshToken(userID uuid.UUID) (*SignedToken, error)

	// ValidateAccessToken returns ErrTokenMalformed, ErrTokenExpired or ErrTokenInvalid on failure.
	ValidateAccessToken(token string) (*Claims, error)

	// ValidateRefreshToken returns the same error kinds as ValidateAccessToken.
	ValidateRefreshToken(token string) (*Claims, error)
}
