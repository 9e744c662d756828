package handler

import (
	"net/http"

	"vidtube/internal/delivery/api/response"
	deliverycontext "vidtube/internal/delivery/context"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ChannelHandler serves channel pages, share codes and watch history.
type ChannelHandler struct {
	channels usecase.ChannelUsecase
}

// NewChannelHandler is the constructor for ChannelHandler.
func NewChannelHandler(channels usecase.ChannelUsecase) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

// GetChannelProfile returns the channel page as seen by the current user.
func (h *ChannelHandler) GetChannelProfile(c echo.Context) error {
	viewerID, ok := deliverycontext.GetUserID(c)
	if !ok {
		viewerID = uuid.Nil
	}

	profile, err := h.channels.GetChannelProfile(c.Request().Context(), viewerID, c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "User channel fetched successfully")
}

// GetChannelQRCode renders a PNG share code for the channel.
func (h *ChannelHandler) GetChannelQRCode(c echo.Context) error {
	code, err := h.channels.GetChannelQRCode(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set("X-Channel-Url", code.URL)

	return c.Blob(http.StatusOK, "image/png", code.PNG)
}

// GetWatchHistory lists the current user's watched videos in history order.
func (h *ChannelHandler) GetWatchHistory(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	videos, err := h.channels.GetWatchHistory(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, videos, "Watch history fetched successfully")
}
