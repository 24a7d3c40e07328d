// childcare-crm/internal/routes/router.go
package routes

import (
	"childcare-crm/internal/handlers"
	"childcare-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires up every route of the application.
func SetupRoutes(r *gin.Engine) {
	// Public routes first: login does not require a token.
	RegisterAuthRoutes(r)

	// Everything else sits behind the JWT middleware.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		authRequired.POST("/auth/logout", handlers.LogoutHandler)
		RegisterAPIRoutes(authRequired)
	}
}
