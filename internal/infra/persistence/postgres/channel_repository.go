package postgres

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ownerColumns = []string{"id", "full_name", "username", "avatar"}

// channelRepository implements the repository.ChannelRepository read models.
type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository is the constructor for channelRepository.
func NewChannelRepository(db *gorm.DB) repository.ChannelRepository {
	return &channelRepository{db: db}
}

func (repo *channelRepository) FindChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*entity.ChannelProfile, error) {
	db := repo.db.WithContext(ctx)

	var channel model.UserModel
	if err := db.Select(sanitizedUserColumns).Where("username = ?", username).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrChannelNotFound
		}

		return nil, errors.Wrap(err, "failed to find channel")
	}

	var subscribers, subscribedTo int64
	if err := db.Model(&model.SubscriptionModel{}).Where("channel_id = ?", channel.ID).Count(&subscribers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count subscribers")
	}
	if err := db.Model(&model.SubscriptionModel{}).Where("subscriber_id = ?", channel.ID).Count(&subscribedTo).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count subscriptions")
	}

	isSubscribed := false
	if viewerID != uuid.Nil {
		var n int64
		err := db.Model(&model.SubscriptionModel{}).
			Where("subscriber_id = ? AND channel_id = ?", viewerID, channel.ID).
			Count(&n).Error
		if err != nil {
			return nil, errors.Wrap(err, "failed to check subscription")
		}
		isSubscribed = n > 0
	}

	return &entity.ChannelProfile{
		ID:                channel.ID,
		FullName:          channel.FullName,
		Username:          channel.Username,
		Email:             channel.Email,
		Avatar:            channel.Avatar,
		CoverImage:        channel.CoverImage,
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (repo *channelRepository) FindWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	db := repo.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&model.UserModel{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if exists == 0 {
		return nil, repository.ErrUserNotFound
	}

	var entries []model.WatchHistoryModel
	err := db.
		Preload("Video").
		Preload("Video.Owner", func(tx *gorm.DB) *gorm.DB { return tx.Select(ownerColumns) }).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load watch history")
	}

	videos := make([]*entity.Video, 0, len(entries))
	for i := range entries {
		// Entries whose video was removed are skipped.
		if entries[i].Video == nil {
			continue
		}
		videos = append(videos, toVideoDomain(entries[i].Video))
	}

	return videos, nil
}

func toVideoDomain(data *model.VideoModel) *entity.Video {
	video := &entity.Video{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Title:       data.Title,
		Description: data.Description,
		Thumbnail:   data.Thumbnail,
		VideoFile:   data.VideoFile,
		Duration:    data.Duration,
		Views:       data.Views,
		IsPublished: data.IsPublished,
		CreatedAt:   data.CreatedAt,
	}
	if data.Owner != nil {
		video.Owner = &entity.Owner{
			ID:       data.Owner.ID,
			FullName: data.Owner.FullName,
			Username: data.Owner.Username,
			Avatar:   data.Owner.Avatar,
		}
	}

	return video
}
