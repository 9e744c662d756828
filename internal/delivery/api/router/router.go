// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vidtube/internal/delivery/api/middleware"
	"vidtube/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ChannelHandler *handler.ChannelHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	channelHandler *handler.ChannelHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		channelHandler: params.ChannelHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	users := e.Group("/api/v1/users")
	{
		users.POST("/register", r.userHandler.Register)
		users.POST("/login", r.userHandler.Login)
		users.POST("/refresh-token", r.userHandler.RefreshToken)
	}

	// Routes below require a valid access token
	secured := users.Group("", r.authMiddleware.Authenticate)
	{
		secured.POST("/logout", r.userHandler.Logout)
		secured.POST("/change-password", r.userHandler.ChangePassword)
		secured.GET("/current-user", r.userHandler.GetCurrentUser)
		secured.PATCH("/update-account-details", r.userHandler.UpdateAccountDetails)
		secured.PATCH("/update-avatar", r.userHandler.UpdateAvatar)
		secured.PATCH("/update-cover-image", r.userHandler.UpdateCoverImage)

		secured.GET("/c/:username", r.channelHandler.GetChannelProfile)
		secured.GET("/c/:username/qr", r.channelHandler.GetChannelQRCode)
		secured.GET("/get-user-watch-history", r.channelHandler.GetWatchHistory)
	}
}
