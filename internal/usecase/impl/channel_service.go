package impl

import (
	"context"
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

// channelService implements the ChannelUsecase interface.
type channelService struct {
	channelRepo repository.ChannelRepository
	userRepo    repository.UserRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// ChannelServiceParams holds dependencies for ChannelService, injected by Fx.
type ChannelServiceParams struct {
	fx.In

	ChannelRepo repository.ChannelRepository
	UserRepo    repository.UserRepository
	QRService   service.QRCodeService
	Logger      *slog.Logger
}

// NewChannelService is the constructor for channelService.
func NewChannelService(params ChannelServiceParams) usecase.ChannelUsecase {
	return &channelService{
		channelRepo: params.ChannelRepo,
		userRepo:    params.UserRepo,
		qrService:   params.QRService,
		logger:      params.Logger,
	}
}

func (srv *channelService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *channelService) GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*entity.ChannelProfile, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username is missing")
	}

	profile, err := srv.channelRepo.FindChannelProfile(ctx, username, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrChannelNotFound) {
			return nil, errors.Wrap(domainerrors.ErrChannelNotFound, username)
		}
		srv.log(ctx).Error("Failed to load channel profile", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "find channel profile")
	}

	return profile, nil
}

func (srv *channelService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	videos, err := srv.channelRepo.FindWatchHistory(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "watch history")
		}
		srv.log(ctx).Error("Failed to load watch history", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "find watch history")
	}

	if videos == nil {
		videos = []*entity.Video{}
	}

	return videos, nil
}

func (srv *channelService) GetChannelQRCode(ctx context.Context, username string) (*usecase.ChannelQRCode, error) {
	username = normalizeUsername(username)
	if username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username is missing")
	}

	channel, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrChannelNotFound, username)
		}

		return nil, errors.Wrap(err, "find channel")
	}

	png, err := srv.qrService.GenerateChannelQR(channel.Username)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	return &usecase.ChannelQRCode{URL: srv.qrService.ChannelURL(channel.Username), PNG: png}, nil
}
