package impl

import (
	"context"
	"log/slog"
	"strings"

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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo  repository.UserRepository
	session   usecase.SessionUsecase
	hasher    service.PasswordHasher
	media     service.MediaStorage
	publisher service.EventPublisher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Session   usecase.SessionUsecase
	Hasher    service.PasswordHasher
	Media     service.MediaStorage
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:  params.UserRepo,
		session:   params.Session,
		hasher:    params.Hasher,
		media:     params.Media,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, rejects duplicates, uploads the profile
// images and creates the account. Uploaded assets are removed again when a
// later step fails.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("registration input is required")
	}

	fullName := strings.TrimSpace(input.FullName)
	lastName := strings.TrimSpace(input.LastName)
	username := normalizeUsername(input.Username)
	email := normalizeEmail(input.Email)
	password := input.Password

	if fullName == "" || lastName == "" || username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fullName, lastName, username, email and password are required")
	}

	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		return nil, errors.WithStack(err)
	}

	_, err := srv.userRepo.FindByEmailOrUsername(ctx, email, username)
	switch {
	case err == nil:
		return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "check existing user")
	}

	if input.Avatar == nil {
		return nil, errors.WithStack(domainerrors.ErrAvatarRequired)
	}

	avatar, err := srv.media.Upload(ctx, service.MediaKindAvatar, input.Avatar)
	if err != nil {
		srv.log(ctx).Warn("Avatar upload failed", slog.String("username", username), slog.Any("error", err))

		return nil, uploadError(err, "avatar")
	}
	uploaded := []string{avatar.URL}

	coverURL := ""
	if input.CoverImage != nil {
		cover, err := srv.media.Upload(ctx, service.MediaKindCover, input.CoverImage)
		if err != nil {
			srv.log(ctx).Warn("Cover image upload failed", slog.String("username", username), slog.Any("error", err))
			deleteMediaBestEffort(ctx, srv.log(ctx), srv.media, uploaded...)

			return nil, uploadError(err, "cover image")
		}
		coverURL = cover.URL
		uploaded = append(uploaded, cover.URL)
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		deleteMediaBestEffort(ctx, srv.log(ctx), srv.media, uploaded...)

		return nil, errors.Wrap(err, "hash password")
	}

	user := &entity.User{
		Email:        email,
		Username:     username,
		FullName:     fullName,
		LastName:     lastName,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
		PasswordHash: hash,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		deleteMediaBestEffort(ctx, srv.log(ctx), srv.media, uploaded...)
		if errors.Is(err, repository.ErrUserConflict) {
			return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
		}
		srv.log(ctx).Error("Failed to create user", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, err.Error())
	}

	created, err := srv.userRepo.FindSanitizedByID(ctx, user.ID)
	if err != nil {
		srv.log(ctx).Error("Created user could not be loaded", slog.Any("user_id", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUserCreationFailed, "load created user")
	}

	srv.log(ctx).Info("User registered", slog.Any("user_id", created.ID), slog.String("username", created.Username))
	publishAccountEvent(ctx, srv.log(ctx), srv.publisher, service.AccountEventRegistered, created)

	return created, nil
}

func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username or email is required")
	}

	email := normalizeEmail(input.Email)
	username := normalizeUsername(input.Username)
	if email == "" && username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username or email is required")
	}
	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	user, err := srv.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "login failed")
		}

		return nil, errors.Wrap(err, "find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.Any("user_id", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	pair, err := srv.session.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	srv.log(ctx).Info("User logged in", slog.Any("user_id", user.ID))

	return &usecase.LoginOutput{User: user.Sanitized(), Tokens: pair}, nil
}

func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := srv.session.Revoke(ctx, userID); err != nil {
		return errors.WithStack(err)
	}

	srv.log(ctx).Info("User logged out", slog.Any("user_id", userID))
	publishAccountEvent(ctx, srv.log(ctx), srv.publisher, service.AccountEventLoggedOut, &entity.User{ID: userID})

	return nil
}

func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*entity.TokenPair, error) {
	if input == nil || strings.TrimSpace(input.RefreshToken) == "" {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token is missing")
	}

	pair, err := srv.session.Rotate(ctx, strings.TrimSpace(input.RefreshToken))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return pair, nil
}

func (srv *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	if input == nil || input.OldPassword == "" || input.NewPassword == "" {
		return domainerrors.ErrValidationFailed.WithDetails("oldPassword and newPassword are required")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "change password")
		}

		return errors.Wrap(err, "find user for password change")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidCredentials.WithDetails("invalid old password"), "change password")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "hash new password")
	}

	if err := srv.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return errors.Wrap(err, "store new password")
	}

	srv.log(ctx).Info("Password changed", slog.Any("user_id", user.ID))
	publishAccountEvent(ctx, srv.log(ctx), srv.publisher, service.AccountEventPasswordChanged, user)

	return nil
}

func (srv *userService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindSanitizedByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "current user")
		}

		return nil, errors.Wrap(err, "find current user")
	}

	return user, nil
}

func (srv *userService) UpdateAccountDetails(ctx context.Context, userID uuid.UUID, input *usecase.UpdateAccountInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fullName and email are required")
	}

	update := entity.AccountUpdate{
		FullName: strings.TrimSpace(input.FullName),
		LastName: strings.TrimSpace(input.LastName),
		Email:    normalizeEmail(input.Email),
	}
	if update.FullName == "" || update.Email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("fullName and email are required")
	}

	if err := srv.userRepo.UpdateAccount(ctx, userID, update); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserConflict):
			return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "update account")
		default:
			return nil, errors.Wrap(domainerrors.ErrUserUpdateFailed, err.Error())
		}
	}

	return srv.GetCurrentUser(ctx, userID)
}
