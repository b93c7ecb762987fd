package auth

import (
	"net/http"

	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/request"
	"go-cabinet/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CookieConfig struct {
	Secure     bool
	AccessTTL  int // seconds
	RefreshTTL int // seconds
}

type Handler struct {
	service Service
	cookies CookieConfig
}

func NewHandler(s Service, cookies CookieConfig) *Handler {
	return &Handler{service: s, cookies: cookies}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func writeBindError(c *gin.Context, err error) {
	appErr := apperror.MapValidationError(err)
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
}

func (h *Handler) isWeb(c *gin.Context) bool {
	return request.IsWebClient(request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.isWeb(c) {
		h.setCookie(c, "access_token", tokens.AccessToken, h.cookies.AccessTTL)
		h.setCookie(c, "refresh_token", tokens.RefreshToken, h.cookies.RefreshTTL)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	user, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, "access_token", "", -1)
	h.setCookie(c, "refresh_token", "", -1)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// RefreshToken reads the refresh token from the cookie for browsers and from
// the body for everyone else.
func (h *Handler) RefreshToken(c *gin.Context) {
	web := h.isWeb(c)

	var refreshToken string
	if web {
		cookie, err := c.Cookie("refresh_token")
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "NO_REFRESH_TOKEN", "Missing refresh token", nil)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, user, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if web {
		h.setCookie(c, "access_token", tokens.AccessToken, h.cookies.AccessTTL)
		h.setCookie(c, "refresh_token", tokens.RefreshToken, h.cookies.RefreshTTL)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, nil)
}
