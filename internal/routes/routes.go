package routes

import (
	"net/http"

	"fairway_backend/internal/handlers"
	"fairway_backend/internal/middleware"
	"fairway_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole HTTP API under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")

	authRequired := middleware.AuthMiddleware()
	studentOnly := middleware.RequireRoles(models.UserRoleStudent)
	coachOnly := middleware.RequireRoles(models.UserRoleCoach)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)

	// Public: registration, login, coach directory.
	appHandlers.AuthHandler.RegisterRoutes(api, authRequired)

	// Authenticated surface.
	authed := api.Group("")
	authed.Use(authRequired)

	coachGroup := api.Group("")
	coachGroup.Use(authRequired, coachOnly)
	appHandlers.CoachHandler.RegisterRoutes(api, coachGroup)

	appHandlers.BookingHandler.RegisterRoutes(authed, studentOnly)
	appHandlers.ChatHandler.RegisterRoutes(authed)

	studentGroup := api.Group("")
	studentGroup.Use(authRequired, studentOnly)
	appHandlers.ReviewHandler.RegisterRoutes(studentGroup)

	adminGroup := api.Group("")
	adminGroup.Use(authRequired, adminOnly)
	appHandlers.AdminHandler.RegisterRoutes(adminGroup)
}
