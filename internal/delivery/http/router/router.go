// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tracker/config"
	"tracker/internal/delivery/http/middleware"
	"tracker/internal/delivery/http/router/handler"
	"tracker/internal/domain/entity"
	"tracker/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics `optional:"true"`
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil && r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	// Auth routes
	e.POST("/login", r.authHandler.Login)
	e.POST("/verify-otp", r.authHandler.VerifyOTP)
	e.POST("/refresh", r.authHandler.Refresh)
	e.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate())

	// User directory. Reads need any valid token, writes need the Admin role.
	authenticated := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.Authenticate(entity.RoleAdmin)

	e.GET("/users", r.userHandler.ListUsers, authenticated)
	e.POST("/users", r.userHandler.CreateUser, adminOnly)
	e.GET("/users/me", r.userHandler.GetMe, authenticated)
	e.GET("/users/:id", r.userHandler.GetUser, authenticated)
	e.DELETE("/users/:id", r.userHandler.DeleteUser, adminOnly)

	adminGroup := e.Group("/admin", r.authMiddleware.Authenticate(entity.RoleAdmin))
	{
		adminGroup.GET("/ping", handler.AdminPing)
	}
}
