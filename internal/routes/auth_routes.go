// childcare-crm/internal/routes/auth_routes.go
package routes

import (
	"childcare-crm/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public authentication routes. These do
// not require a token.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/auth/login", handlers.LoginHandler)
}
