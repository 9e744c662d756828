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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo  repository.UserRepository
	media     service.MediaStorage
	publisher service.EventPublisher
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Media     service.MediaStorage
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:  params.UserRepo,
		media:     params.Media,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatar *service.MediaUpload) (*entity.User, error) {
	if avatar == nil {
		return nil, errors.WithStack(domainerrors.ErrAvatarRequired)
	}

	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := srv.media.Upload(ctx, service.MediaKindAvatar, avatar)
	if err != nil {
		srv.log(ctx).Warn("Avatar upload failed", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, uploadError(err, "avatar")
	}

	if err := srv.userRepo.UpdateAvatar(ctx, user.ID, asset.URL); err != nil {
		deleteMediaBestEffort(ctx, srv.log(ctx), srv.media, asset.URL)

		return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
	}

	// The new avatar is committed; losing the old file must not fail the request.
	if user.Avatar != "" && user.Avatar != asset.URL {
		deleteMediaBestEffort(ctx, srv.log(ctx), srv.media, user.Avatar)
	}

	srv.log(ctx).Info("Avatar updated", slog.Any("user_id", user.ID))
	publishAccountEvent(ctx, srv.log(ctx), srv.publisher, service.AccountEventAvatarReplaced, user)

	return srv.findSanitized(ctx, user.ID)
}

func (srv *profileService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, cover *service.MediaUpload) (*entity.User, error) {
	if cover == nil {
		return nil, errors.WithStack(domainerrors.ErrCoverImageRequired)
	}

	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := srv.media.Upload(ctx, service.MediaKindCover, cover)
	if err != nil {
		srv.log(ctx).Warn("Cover image upload failed", slog.Any("user_id", userID), slog.Any("error", err))

		return nil, uploadError(err, "cover image")
	}

	if err := srv.userRepo.UpdateCoverImage(ctx, user.ID, asset.URL); err != nil {
		deleteMediaBestEffort(ctx, srv.log(ctx), srv.media, asset.URL)

		return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
	}

	srv.log(ctx).Info("Cover image updated", slog.Any("user_id", user.ID))

	return srv.findSanitized(ctx, user.ID)
}

func (srv *profileService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile update")
		}

		return nil, errors.Wrap(err, "find user for profile update")
	}

	return user, nil
}

func (srv *profileService) findSanitized(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindSanitizedByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "load updated user")
	}

	return user, nil
}
