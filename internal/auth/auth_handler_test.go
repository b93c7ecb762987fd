package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cabinet/internal/auth"
	autherrors "go-cabinet/internal/auth/errors"
	authMock "go-cabinet/internal/auth/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func jsonRequest(method, path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	h := auth.NewHandler(svc, auth.CookieConfig{AccessTTL: 900, RefreshTTL: 86400})

	t.Run("web client gets cookies", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "a@cabinet.fr", "motdepasse").
			Return(auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, auth.AuthResponse{Email: "a@cabinet.fr", Role: "Associé"}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/auth/login", auth.LoginRequest{Email: "a@cabinet.fr", Password: "motdepasse"})
		c.Request.Header.Set("X-Client-Type", "WEB")

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		names := map[string]string{}
		for _, ck := range cookies {
			names[ck.Name] = ck.Value
		}
		assert.Equal(t, "access", names["access_token"])
		assert.Equal(t, "refresh", names["refresh_token"])
	})

	t.Run("api client gets no cookies", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "a@cabinet.fr", "motdepasse").
			Return(auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, auth.AuthResponse{Email: "a@cabinet.fr"}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/auth/login", auth.LoginRequest{Email: "a@cabinet.fr", Password: "motdepasse"})
		c.Request.Header.Set("User-Agent", "curl/8.0")

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "a@cabinet.fr", "nope").
			Return(auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/auth/login", auth.LoginRequest{Email: "a@cabinet.fr", Password: "nope"})

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email"})

		h.Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	svc.EXPECT().GetMe(gomock.Any(), "u-9").Return(&auth.AuthResponse{ID: "u-9", Role: "Comptable"}, nil)
	h := auth.NewHandler(svc, auth.CookieConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set("user_id", "u-9")
	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var me auth.AuthResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &me))
	assert.Equal(t, "u-9", me.ID)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	h.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Register_UsesCallerOffice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	svc.EXPECT().Register(gomock.Any(), "office-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, companyID string, req auth.RegisterRequest) (auth.AuthResponse, error) {
			return auth.AuthResponse{CompanyID: companyID, Email: req.Email, Role: req.Role}, nil
		})
	h := auth.NewHandler(svc, auth.CookieConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "office-1")
	c.Request = jsonRequest(http.MethodPost, "/auth/register", auth.RegisterRequest{
		Email: "new@cabinet.fr", Name: "Nouveau", Password: "motdepasse", Role: "Secrétaire",
	})

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_Logout_ClearsCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := auth.NewHandler(authMock.NewMockService(gomock.NewController(t)), auth.CookieConfig{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	for _, ck := range w.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.True(t, ck.MaxAge < 0)
	}
}
