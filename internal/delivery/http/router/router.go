// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"zentora/internal/delivery/http/middleware"
	"zentora/internal/delivery/http/router/handler"
	"zentora/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	SocialHandler  *handler.SocialHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	accountHandler *handler.AccountHandler
	socialHandler  *handler.SocialHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		accountHandler: params.AccountHandler,
		socialHandler:  params.SocialHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/verify-email/:code", r.authHandler.VerifyEmail)
		authGroup.POST("/resend-verification", r.authHandler.ResendVerification)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/password/forgot", r.accountHandler.ForgotPassword)
		authGroup.POST("/password/reset", r.accountHandler.ResetPassword)
		authGroup.POST("/reactivate", r.accountHandler.Reactivate)
		authGroup.POST("/exchange", r.socialHandler.Exchange)
		authGroup.GET("/:provider/login", r.socialHandler.Login)
		authGroup.GET("/:provider/callback", r.socialHandler.Callback)
	}

	// Routes below require a non-revoked access token.
	protectedAuth := api.Group("/auth")
	protectedAuth.Use(r.authMiddleware.Authenticate)
	{
		protectedAuth.POST("/logout", r.authHandler.Logout)
		protectedAuth.POST("/password/change", r.accountHandler.ChangePassword)
		protectedAuth.POST("/revoke-all", r.accountHandler.RevokeAll)
		protectedAuth.DELETE("/account", r.accountHandler.DeleteAccount)
	}

	adminAuth := api.Group("/auth")
	adminAuth.Use(r.authMiddleware.Authenticate)
	adminAuth.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminAuth.DELETE("/unverified", r.accountHandler.CleanupUnverified)
	}

	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.accountHandler.Me)
	}
}
