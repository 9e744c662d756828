// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/service"

	"github.com/google/uuid"
)

// ProfileUsecase defines the profile media operations.
type ProfileUsecase interface {
	// UpdateAvatar stores the new avatar, commits its URL and then removes
	// the previous asset on a best-effort basis.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *service.MediaUpload) (*entity.User, error)

	// UpdateCoverImage stores the new cover image and commits its URL.
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, cover *service.MediaUpload) (*entity.User, error)
}
