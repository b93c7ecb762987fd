package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-cabinet/internal/middleware"
	"go-cabinet/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	var fromCtx string
	r.GET("/ping", func(c *gin.Context) {
		fromCtx = contextutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	do := func(header string) string {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set(middleware.HeaderRequestID, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Header().Get(middleware.HeaderRequestID)
	}

	t.Run("keeps caller id", func(t *testing.T) {
		got := do("trace-abc-123")
		assert.Equal(t, "trace-abc-123", got)
		assert.Equal(t, "trace-abc-123", fromCtx)
	})

	t.Run("mints id when missing", func(t *testing.T) {
		got := do("")
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
		assert.Equal(t, got, fromCtx)
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		long := strings.Repeat("a", 200)
		got := do(long)
		assert.NotEqual(t, long, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})

	t.Run("replaces id with spaces", func(t *testing.T) {
		got := do("two words")
		assert.NotEqual(t, "two words", got)
	})
}
