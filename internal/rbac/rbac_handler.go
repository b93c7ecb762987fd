package rbac

import (
	"net/http"
	"strings"

	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	req.Role = strings.TrimSpace(req.Role)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("enforce failed", zap.Error(err))
		writeServiceError(c, apperror.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

// Permissions lists the caller's effective grants. Looking at another role
// needs rbac:read.
func (h *Handler) Permissions(c *gin.Context) {
	callerRole := c.GetString("role")
	role := strings.TrimSpace(c.Query("role"))
	if role == "" {
		role = callerRole
	}

	if role != callerRole {
		if err := h.service.Check(callerRole, ResourceRBAC, ActionRead); err != nil {
			writeServiceError(c, err)
			return
		}
	}

	perms, err := h.service.Permissions(role)
	if err != nil {
		h.logger.Error("list permissions failed", zap.String("role", role), zap.Error(err))
		writeServiceError(c, apperror.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, RolePermissionsResponse{
		Role:        role,
		Permissions: perms,
	}, nil)
}

func (h *Handler) Reload(c *gin.Context) {
	if err := h.service.LoadPolicy(); err != nil {
		h.logger.Error("reload policy failed", zap.Error(err))
		response.Error(c, http.StatusUnprocessableEntity, apperror.CodeValidationError, "Policy could not be loaded", err.Error())
		return
	}

	h.logger.Info("rbac policy reloaded", zap.String("user_id", c.GetString("user_id")))
	response.Success(c, http.StatusOK, gin.H{"reloaded": true}, nil)
}
