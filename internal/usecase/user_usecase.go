// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	FullName   string
	LastName   string
	Username   string
	Email      string
	Password   string
	Avatar     *service.MediaUpload
	CoverImage *service.MediaUpload
}

// LoginInput accepts either an email or a username.
type LoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenInput carries the token presented in the request body.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// UpdateAccountInput defines the editable account details.
type UpdateAccountInput struct {
	FullName string `json:"fullName" validate:"required"`
	LastName string `json:"lastName"`
	Email    string `json:"email" validate:"required,email"`
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	User   *entity.User
	Tokens *entity.TokenPair
}

// UserUsecase defines the interface for account operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*entity.TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateAccountDetails(ctx context.Context, userID uuid.UUID, input *UpdateAccountInput) (*entity.User, error)
}
