// Package handler contains the HTTP handlers for the application.
package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"vidtube/config"
	"vidtube/internal/delivery/api/response"
	deliverycontext "vidtube/internal/delivery/context"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/service"
	"vidtube/internal/errors"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandler serves the account and profile routes.
type UserHandler struct {
	users    usecase.UserUsecase
	profiles usecase.ProfileUsecase
	cookies  *tokenCookies
	logger   *slog.Logger
}

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	Users    usecase.UserUsecase
	Profiles usecase.ProfileUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		users:    params.Users,
		profiles: params.Profiles,
		cookies:  newTokenCookies(params.Config),
		logger:   params.Logger,
	}
}

type loginResponse struct {
	User         *entity.UserProfile `json:"user"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register handles the multipart registration form.
func (h *UserHandler) Register(c echo.Context) error {
	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}
	cover, err := formUpload(c, "coverImage")
	if err != nil {
		return err
	}

	input := &usecase.RegisterInput{
		FullName:   c.FormValue("fullName"),
		LastName:   c.FormValue("lastName"),
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		Password:   c.FormValue("password"),
		Avatar:     avatar,
		CoverImage: cover,
	}

	user, err := h.users.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user.Profile(), "User registered successfully")
}

// Login handles the login request and sets both session cookies.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	output, err := h.users.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.set(c, output.Tokens)

	return response.Success(c, http.StatusOK, loginResponse{
		User:         output.User.Profile(),
		AccessToken:  output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// Logout revokes the refresh token and clears both cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	if err := h.users.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.clear(c)

	return response.Success(c, http.StatusOK, map[string]any{}, "User logged out")
}

// RefreshToken rotates the session. The cookie takes precedence over the body.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	var input usecase.RefreshTokenInput
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		input.RefreshToken = cookie.Value
	} else if err := c.Bind(&input); err != nil {
		return domainerrors.ErrRefreshTokenInvalid
	}

	pair, err := h.users.RefreshToken(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.set(c, pair)

	return response.Success(c, http.StatusOK, tokensResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword replaces the current user's password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid password change input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.users.ChangePassword(c.Request().Context(), userID, &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{}, "Password changed successfully")
}

// GetCurrentUser returns the user attached by the auth middleware.
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	return response.Success(c, http.StatusOK, user.Profile(), "User fetched successfully")
}

// UpdateAccountDetails changes the editable account fields.
func (h *UserHandler) UpdateAccountDetails(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var input usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "Invalid account details")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.users.UpdateAccountDetails(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Profile(), "Account details updated successfully")
}

// UpdateAvatar replaces the current user's avatar.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	avatar, err := formUpload(c, "avatar")
	if err != nil {
		return err
	}

	user, err := h.profiles.UpdateAvatar(c.Request().Context(), userID, avatar)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Profile(), "Avatar updated successfully")
}

// UpdateCoverImage replaces the current user's cover image.
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	cover, err := formUpload(c, "coverImage")
	if err != nil {
		return err
	}

	user, err := h.profiles.UpdateCoverImage(c.Request().Context(), userID, cover)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Profile(), "Cover image updated successfully")
}

// formUpload returns nil when the form carries no file under field, leaving
// the decision whether it is required to the usecase.
func formUpload(c echo.Context, field string) (*service.MediaUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, domainerrors.ErrValidationFailed.WithDetails("malformed multipart form")
	}

	return newMediaUpload(header), nil
}

func newMediaUpload(header *multipart.FileHeader) *service.MediaUpload {
	return &service.MediaUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}
