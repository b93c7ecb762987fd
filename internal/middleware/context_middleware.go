package middleware

import (
	"time"

	"go-cabinet/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying request_id, user_id
// and company_id, then logs the request outcome.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		start := time.Now()
		md := contextutil.ExtractMetadata(c.Request.Context())

		reqLogger := logger.With(
			zap.String("request_id", md.RequestID),
			zap.String("user_id", md.UserID),
			zap.String("company_id", md.CompanyID),
		)
		c.Request = c.Request.WithContext(contextutil.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		reqLogger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
