package payroll

import (
	"go-cabinet/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate middleware.Gate) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.RBACAuthorize(gate, "payroll", "read"))
	{
		payroll.GET("/current", middleware.RateLimitByUser(1, 5), handler.Current)
		payroll.GET("/weeks/:week", middleware.RateLimitByUser(1, 5), handler.ByWeek)
		payroll.GET("/weeks/:week/summary", middleware.RateLimitByUser(1, 5), handler.Summary)
	}
}
