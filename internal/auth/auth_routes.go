package auth

import (
	"go-cabinet/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public endpoints on public and the rest on secured,
// which must already run AuthMiddleware.
func RegisterRoutes(public, secured *gin.RouterGroup, handler *Handler, gate middleware.Gate) {
	open := public.Group("/auth")
	{
		open.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		open.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.RefreshToken)
		open.POST("/logout", handler.Logout)
	}

	auth := secured.Group("/auth")
	{
		auth.GET("/me", middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/register",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(gate, "rbac", "manage"),
			handler.Register,
		)
	}
}
