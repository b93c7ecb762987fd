package dossier

import (
	"time"

	"go-cabinet/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the case ledger. POST /cases honors Idempotency-Key
// when rdb is set.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate middleware.Gate, rdb *redis.Client, idempotencyTTL time.Duration) {
	cases := r.Group("/cases")
	{
		cases.GET("/weeks",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(gate, "case", "read"),
			handler.ListWeeks,
		)

		cases.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(gate, "case", "read"),
			handler.ListByWeek,
		)

		cases.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(gate, "case", "read"),
			handler.GetByID,
		)

		create := []gin.HandlerFunc{
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(gate, "case", "create"),
		}
		if rdb != nil {
			create = append(create, middleware.Idempotency(rdb, idempotencyTTL))
		}
		cases.POST("", append(create, handler.Create)...)

		cases.PATCH("/:id/status",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(gate, "case", "update"),
			handler.SetStatus,
		)

		cases.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(gate, "case", "delete"),
			handler.Delete,
		)
	}
}
