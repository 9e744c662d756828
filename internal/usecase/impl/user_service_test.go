package impl

import (
	"context"
	"testing"

	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/errors"
	mockRepo "vidtube/internal/mocks/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		FullName: "  Alice ",
		LastName: "Liddell",
		Username: "  Alice_W ",
		Email:    "Alice@Example.com",
		Password: "password123",
		Avatar:   newUpload("avatar.png", "avatar-bytes"),
	}
}

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	input := validRegisterInput()
	input.CoverImage = newUpload("cover.png", "cover-bytes")
	env.expectUpload(service.MediaKindAvatar, "https://cdn.test/avatar/1-avatar.png")
	env.expectUpload(service.MediaKindCover, "https://cdn.test/cover/2-cover.png")
	env.expectEvent(service.AccountEventRegistered)

	user, err := env.users.Register(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice_w", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.FullName)
	assert.Equal(t, "https://cdn.test/avatar/1-avatar.png", user.Avatar)
	assert.Equal(t, "https://cdn.test/cover/2-cover.png", user.CoverImage)
	assert.Empty(t, user.PasswordHash, "response must be sanitized")
	assert.Empty(t, user.RefreshToken)

	stored := env.store.get(user.ID)
	assert.True(t, env.hasher.Check("password123", stored.PasswordHash))
}

func TestUserService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*usecase.RegisterInput)
		want   error
	}{
		{name: "blank full name", mutate: func(in *usecase.RegisterInput) { in.FullName = "   " }, want: domainerrors.ErrValidationFailed},
		{name: "missing last name", mutate: func(in *usecase.RegisterInput) { in.LastName = "" }, want: domainerrors.ErrValidationFailed},
		{name: "missing username", mutate: func(in *usecase.RegisterInput) { in.Username = "" }, want: domainerrors.ErrValidationFailed},
		{name: "missing email", mutate: func(in *usecase.RegisterInput) { in.Email = " " }, want: domainerrors.ErrValidationFailed},
		{name: "missing password", mutate: func(in *usecase.RegisterInput) { in.Password = "" }, want: domainerrors.ErrValidationFailed},
		{name: "weak password", mutate: func(in *usecase.RegisterInput) { in.Password = "short" }, want: domainerrors.ErrPasswordStrength},
		{name: "missing avatar", mutate: func(in *usecase.RegisterInput) { in.Avatar = nil }, want: domainerrors.ErrAvatarRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			input := validRegisterInput()
			tt.mutate(input)

			user, err := env.users.Register(context.Background(), input)
			assert.Nil(t, user)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, env.store.users, "no record may be created")
			env.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice_w", "password123")

	byUsername := validRegisterInput()
	byUsername.Email = "other@example.com"
	_, err := env.users.Register(context.Background(), byUsername)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	byEmail := validRegisterInput()
	byEmail.Username = "someone_else"
	byEmail.Email = "alice_w@example.com"
	_, err = env.users.Register(context.Background(), byEmail)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	env.media.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_RegisterCoverUploadFailureRemovesAvatar(t *testing.T) {
	env := newTestEnv(t)
	env.expectUpload(service.MediaKindAvatar, "https://cdn.test/avatar/1-avatar.png")
	env.expectUpload(service.MediaKindCover, "").Return(nil, errors.New("bucket unavailable"))
	env.expectDelete("https://cdn.test/avatar/1-avatar.png")

	input := validRegisterInput()
	input.CoverImage = newUpload("cover.png", "cover-bytes")

	_, err := env.users.Register(context.Background(), input)
	assert.True(t, errors.Is(err, domainerrors.ErrMediaUploadFailed))
	assert.Empty(t, env.store.users)
}

func TestUserService_RegisterCreateFailureRemovesUploads(t *testing.T) {
	env := newTestEnv(t)
	env.expectUpload(service.MediaKindAvatar, "https://cdn.test/avatar/1-avatar.png")
	env.expectDelete("https://cdn.test/avatar/1-avatar.png")

	userRepo := mockRepo.NewMockUserRepository(t)
	userRepo.EXPECT().
		FindByEmailOrUsername(mock.Anything, "alice@example.com", "alice_w").
		Return(nil, repository.ErrUserNotFound).
		Once()
	userRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.User")).
		Return(errors.New("connection reset")).
		Once()
	env.users.userRepo = userRepo

	_, err := env.users.Register(context.Background(), validRegisterInput())
	assert.True(t, errors.Is(err, domainerrors.ErrUserCreationFailed))
}

func TestUserService_RegisterAvatarUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.expectUpload(service.MediaKindAvatar, "").Return(nil, domainerrors.ErrUnsupportedMediaType)

	_, err := env.users.Register(context.Background(), validRegisterInput())
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedMediaType))
	assert.Empty(t, env.store.users)
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	t.Run("by username", func(t *testing.T) {
		out, err := env.users.Login(ctx, &usecase.LoginInput{Username: "ALICE", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, out.User.ID)
		assert.Empty(t, out.User.PasswordHash)
		assert.Empty(t, out.User.RefreshToken)
		assert.Equal(t, out.Tokens.RefreshToken, env.store.get(user.ID).RefreshToken)
	})

	t.Run("by email", func(t *testing.T) {
		out, err := env.users.Login(ctx, &usecase.LoginInput{Email: "alice@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "nope"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.users.Login(ctx, &usecase.LoginInput{Username: "bob", Password: "password123"})
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("no identifier", func(t *testing.T) {
		_, err := env.users.Login(ctx, &usecase.LoginInput{Password: "password123"})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})
}

func TestUserService_LogoutThenRefreshFails(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	out, err := env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	env.expectEvent(service.AccountEventLoggedOut)
	require.NoError(t, env.users.Logout(ctx, user.ID))
	assert.Empty(t, env.store.get(user.ID).RefreshToken)

	_, err = env.users.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: out.Tokens.RefreshToken})
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestUserService_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser("alice", "password123")
	ctx := context.Background()

	out, err := env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	pair, err := env.users.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: out.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, out.Tokens.RefreshToken, pair.RefreshToken)

	_, err = env.users.RefreshToken(ctx, &usecase.RefreshTokenInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	err := env.users.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{OldPassword: "wrong", NewPassword: "newpassword456"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	err = env.users.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{OldPassword: "password123", NewPassword: "weak"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	env.expectEvent(service.AccountEventPasswordChanged)
	require.NoError(t, env.users.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{OldPassword: "password123", NewPassword: "newpassword456"}))

	_, err = env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "password123"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	_, err = env.users.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "newpassword456"})
	assert.NoError(t, err)
}

func TestUserService_UpdateAccountDetails(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser("alice", "password123")
	env.seedUser("bob", "password123")
	ctx := context.Background()

	updated, err := env.users.UpdateAccountDetails(ctx, alice.ID, &usecase.UpdateAccountInput{FullName: " Alice L ", Email: "ALICE@new.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice L", updated.FullName)
	assert.Equal(t, "alice@new.example.com", updated.Email)
	assert.Empty(t, updated.PasswordHash)

	_, err = env.users.UpdateAccountDetails(ctx, alice.ID, &usecase.UpdateAccountInput{FullName: "Alice", Email: "bob@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	_, err = env.users.UpdateAccountDetails(ctx, alice.ID, &usecase.UpdateAccountInput{FullName: "", Email: "x@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = env.users.UpdateAccountDetails(ctx, uuid.New(), &usecase.UpdateAccountInput{FullName: "Ghost", Email: "ghost@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_GetCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser("alice", "password123")

	user, err := env.users.GetCurrentUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = env.users.GetCurrentUser(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_PublishFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	env.expectUpload(service.MediaKindAvatar, "https://cdn.test/avatar/1-avatar.png")
	env.expectEvent(service.AccountEventRegistered).Return(errors.New("broker down"))

	_, err := env.users.Register(context.Background(), validRegisterInput())
	assert.NoError(t, err)
}
