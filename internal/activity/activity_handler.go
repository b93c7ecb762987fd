package activity

import (
	"net/http"
	"strconv"

	activityerrors "go-cabinet/internal/activity/errors"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List reads ?limit= and ?aggregate_type=case|employee.
func (h *Handler) List(c *gin.Context) {
	q := ListActivityQuery{AggregateType: c.Query("aggregate_type")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.AbortWithError(c, activityerrors.ErrInvalidLimit)
			return
		}
		q.Limit = limit
	}

	resp, err := h.service.List(c.Request.Context(), c.GetString("company_id"), q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
