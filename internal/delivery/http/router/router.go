// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	httpmiddleware "tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TodoHandler    *handler.TodoHandler
	UserHandler    *handler.UserHandler
	AuthHandler    *handler.AuthHandler
	AppTodoHandler *handler.AppTodoHandler
	AuthMiddleware *httpmiddleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	todoHandler    *handler.TodoHandler
	userHandler    *handler.UserHandler
	authHandler    *handler.AuthHandler
	appTodoHandler *handler.AppTodoHandler
	authMiddleware *httpmiddleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		todoHandler:    params.TodoHandler,
		userHandler:    params.UserHandler,
		authHandler:    params.AuthHandler,
		appTodoHandler: params.AppTodoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Todo store endpoints
	e.GET("/todos", r.todoHandler.List)
	e.GET("/todos/:id", r.todoHandler.Get)
	e.POST("/todos", r.todoHandler.Create)
	e.PATCH("/todos/:id", r.todoHandler.Update)
	e.DELETE("/todos/:id", r.todoHandler.Delete)

	// User store endpoints. The check routes are registered before the
	// :id route so it cannot shadow them.
	e.GET("/users", r.userHandler.List)
	e.GET("/users/check-email", r.userHandler.CheckEmail)
	e.GET("/users/check-username", r.userHandler.CheckUsername)
	e.GET("/users/email/:email", r.userHandler.GetByEmail)
	e.GET("/users/:id", r.userHandler.Get)
	e.POST("/users", r.userHandler.Create)
	e.PATCH("/users/:id", r.userHandler.Update)
	e.DELETE("/users/:id", r.userHandler.Delete)

	// Account and session endpoints
	auth := e.Group("/auth")
	auth.POST("/register", r.authHandler.Register)
	auth.POST("/login", r.authHandler.Login)
	auth.POST("/logout", r.authHandler.Logout)
	auth.POST("/refresh", r.authHandler.Refresh)
	auth.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	auth.POST("/change-password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)

	// Owner-scoped todo endpoints, all behind the session check. The
	// stats route comes before :id for the same shadowing reason.
	api := e.Group("/api", r.authMiddleware.Authenticate)
	api.GET("/todos", r.appTodoHandler.List)
	api.GET("/todos/stats", r.appTodoHandler.Stats)
	api.GET("/todos/:id", r.appTodoHandler.Get)
	api.POST("/todos", r.appTodoHandler.Create)
	api.PATCH("/todos/:id", r.appTodoHandler.Update)
	api.POST("/todos/:id/toggle", r.appTodoHandler.Toggle)
	api.DELETE("/todos/:id", r.appTodoHandler.Delete)
}
