package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ChannelQRCode is a PNG share code for a channel.
type ChannelQRCode struct {
	URL string
	PNG []byte
}

// ChannelUsecase serves the read models built over channels.
type ChannelUsecase interface {
	GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*entity.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error)
	GetChannelQRCode(ctx context.Context, username string) (*ChannelQRCode, error)
}
