package rbac

import (
	"go-cabinet/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be already authenticated.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate middleware.Gate) {
	group := r.Group("/rbac")
	{
		group.GET("/permissions", handler.Permissions)
		group.POST("/enforce", middleware.RBACAuthorize(gate, ResourceRBAC, ActionRead), handler.Enforce)
		group.POST("/reload", middleware.RBACAuthorize(gate, ResourceRBAC, ActionManage), handler.Reload)
	}
}
