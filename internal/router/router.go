// Package router wires the HTTP routes to their handlers and
// middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/goaltrack/internal/config"
	"github.com/iliyamo/goaltrack/internal/handler"
	"github.com/iliyamo/goaltrack/internal/middleware"
	"github.com/iliyamo/goaltrack/internal/model"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Auth        *handler.AuthHandler
	Topics      *handler.TopicHandler
	Followups   *handler.FollowupHandler
	Departments *handler.DepartmentHandler
	Users       *handler.UserHandler
	System      *handler.SystemHandler
	Settings    *handler.SettingsHandler
}

// Register sets up all routes. The login screen endpoints stay open;
// everything else requires a valid access token, and user management
// plus destructive system operations additionally require the admin
// role.
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	open := e.Group("/v1/auth")
	open.GET("/users", h.Auth.LoginUsers)
	open.POST("/login", h.Auth.Login)

	v1 := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/auth/me", h.Auth.Me)

	v1.GET("/topics", h.Topics.List)
	v1.POST("/topics", h.Topics.Create)
	v1.GET("/topics/overdue", h.Topics.Overdue)
	v1.GET("/topics/:id", h.Topics.Get)
	v1.PATCH("/topics/:id", h.Topics.Update)
	v1.DELETE("/topics/:id", h.Topics.Delete)
	v1.PUT("/topics/:id/status", h.Topics.SetStatus)
	v1.POST("/topics/:id/notify", h.Topics.Notify)
	v1.GET("/stats", h.Topics.Stats)

	v1.GET("/followups", h.Followups.List)
	v1.POST("/followups", h.Followups.Create)

	v1.GET("/departments", h.Departments.List)
	v1.PATCH("/departments/:id", h.Departments.Update)
	v1.POST("/departments/resolve", h.Departments.Resolve)

	v1.GET("/users", h.Users.List)
	v1.GET("/logs", h.Settings.Logs)
	v1.GET("/settings/telegram-token", h.Settings.TelegramToken)
	v1.GET("/backup", h.System.Backup)
	v1.POST("/import", h.System.Import)

	admin := v1.Group("", middleware.RequireRole(string(model.RoleAdmin)))
	admin.POST("/users", h.Users.Create)
	admin.PATCH("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)
	admin.PUT("/settings/telegram-token", h.Settings.SetTelegramToken)
	admin.DELETE("/logs", h.Settings.ClearLogs)
	admin.POST("/restore", h.System.Restore)
	admin.POST("/reset", h.System.Reset)
}
