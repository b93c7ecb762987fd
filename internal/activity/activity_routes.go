package activity

import (
	"go-cabinet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate middleware.Gate) {
	r.GET("/activities",
		middleware.RateLimitByUser(2, 10),
		middleware.RBACAuthorize(gate, "activity", "read"),
		handler.List,
	)
}
