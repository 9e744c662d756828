package repository

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/errors"

	"github.com/google/uuid"
)

// ErrChannelNotFound is returned when no user owns the requested username.
var ErrChannelNotFound = errors.New("channel not found")

// ChannelRepository serves the read-model aggregations over users,
// subscriptions, videos and watch history.
type ChannelRepository interface {
	// FindChannelProfile aggregates subscriber counts for the channel named
	// username and whether viewerID subscribes to it.
	FindChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*entity.ChannelProfile, error)

	// FindWatchHistory returns the videos userID watched, in history order,
	// each with its owner populated.
	FindWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error)
}
