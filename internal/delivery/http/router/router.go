// Package router contains routing setup for the HTTP delivery.
package router

import (
	"habitly/internal/delivery/http/middleware"
	"habitly/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	OAuthHandler     *handler.OAuthHandler
	AccountHandler   *handler.AccountHandler
	SystemHandler    *handler.SystemHandler
	AuthMiddleware   *middleware.AuthMiddleware
	LoggerMiddleware *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	oauthHandler     *handler.OAuthHandler
	accountHandler   *handler.AccountHandler
	systemHandler    *handler.SystemHandler
	authMiddleware   *middleware.AuthMiddleware
	loggerMiddleware *middleware.LoggerMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		oauthHandler:     params.OAuthHandler,
		accountHandler:   params.AccountHandler,
		systemHandler:    params.SystemHandler,
		authMiddleware:   params.AuthMiddleware,
		loggerMiddleware: params.LoggerMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Authentication and authorization run in one path-based gate applied
// to every route, so route groups carry no per-group auth middleware.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.loggerMiddleware.Handle)
	e.Use(r.authMiddleware.Gate)

	e.GET("/health", handler.HealthCheck)
	e.GET("/config", r.systemHandler.RuntimeConfig)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/reissue", r.authHandler.Reissue)
		authGroup.DELETE("/logout", r.authHandler.Logout)
		authGroup.GET("/exists/username", r.authHandler.UsernameExists)
		authGroup.GET("/exists/nickname", r.authHandler.NicknameExists)
	}

	oauthGroup := e.Group("/oauth")
	{
		oauthGroup.GET("/google", r.oauthHandler.GoogleLogin)
		oauthGroup.GET("/google/callback", r.oauthHandler.GoogleCallback)
		oauthGroup.POST("/google/token", r.oauthHandler.GoogleToken)
	}

	userGroup := e.Group("/user")
	{
		userGroup.GET("/profile", r.accountHandler.GetProfile)
	}

	adminGroup := e.Group("/admin")
	{
		adminGroup.GET("/accounts", r.accountHandler.ListAccounts)
	}
}
