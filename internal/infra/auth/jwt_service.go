// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidtube/config"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/service"
	"vidtube/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	issuer        string
	now           func() time.Time
}

// NewJWTService builds the token service from the secrets and lifetimes in cfg.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg *config.Config, now func() time.Time) (*jwtService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Token.AccessTTL,
		refreshTTL:    cfg.Token.RefreshTTL,
		issuer:        cfg.Env.ServiceName,
		now:           now,
	}, nil
}

func (s *jwtService) GenerateAccessToken(userID uuid.UUID) (*service.SignedToken, error) {
	return s.generateToken(userID, entity.TokenTypeAccess, s.accessTTL, s.accessSecret)
}

func (s *jwtService) GenerateRefreshToken(userID uuid.UUID) (*service.SignedToken, error) {
	return s.generateToken(userID, entity.TokenTypeRefresh, s.refreshTTL, s.refreshSecret)
}

func (s *jwtService) ValidateAccessToken(token string) (*service.Claims, error) {
	return s.validateToken(token, entity.TokenTypeAccess, s.accessSecret)
}

func (s *jwtService) ValidateRefreshToken(token string) (*service.Claims, error) {
	return s.validateToken(token, entity.TokenTypeRefresh, s.refreshSecret)
}

// generateToken signs a token carrying sub, typ, jti, iat and exp. The random
// jti keeps two tokens minted within the same second distinct.
func (s *jwtService) generateToken(userID uuid.UUID, tokenType entity.TokenType, ttl time.Duration, secret []byte) (*service.SignedToken, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)

	claims := &service.Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return nil, errors.Wrapf(err, "sign %s token", tokenType)
	}

	return &service.SignedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

func (s *jwtService) validateToken(raw string, want entity.TokenType, secret []byte) (*service.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domainerrors.ErrTokenMalformed
	}

	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyJWTError(err)
	}

	if claims.Type != want {
		return nil, errors.Wrapf(domainerrors.ErrTokenInvalid, "expected %s token", want)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "subject is not a user id")
	}
	claims.UserID = userID

	return claims, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Wrap(domainerrors.ErrTokenMalformed, err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(domainerrors.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}
}
