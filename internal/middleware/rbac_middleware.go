package middleware

import (
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/response"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=rbac_middleware.go -destination=mock/rbac_middleware_mock.go -package=mock

// Gate is the access check consulted before a handler runs. rbac.Service
// satisfies it.
type Gate interface {
	Check(role, resource, action string) error
}

func RBACAuthorize(gate Gate, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		if err := gate.Check(role, resource, action); err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
