package dossier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cabinet/internal/dossier"
	dossiererrors "go-cabinet/internal/dossier/errors"
	dossierMock "go-cabinet/internal/dossier/mock"
	"go-cabinet/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(companyID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	})
	return r
}

func serve(r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apiEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCaseHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := dossierMock.NewMockService(ctrl)
	employeeID := uuid.NewString()

	r := setupRouter("office-1")
	r.POST("/cases", dossier.NewHandler(svc).Create)

	t.Run("created", func(t *testing.T) {
		svc.EXPECT().
			Create(gomock.Any(), "office-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dossier.CreateCaseRequest) (dossier.CaseResponse, error) {
				assert.Equal(t, "Jean Valjean", req.ClientName)
				assert.Equal(t, int64(8000), req.Fee)
				return dossier.CaseResponse{ID: "c-1", ClientName: req.ClientName, WeekKey: "2025-W01", Status: "open"}, nil
			})

		w, env := serve(r, http.MethodPost, "/cases", map[string]any{
			"client_name": "Jean Valjean", "case_type": "Pénal", "employee_id": employeeID, "fee": 8000,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		var got dossier.CaseResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "2025-W01", got.WeekKey)
	})

	t.Run("negative fee rejected at binding", func(t *testing.T) {
		w, env := serve(r, http.MethodPost, "/cases", map[string]any{
			"client_name": "Jean Valjean", "case_type": "Pénal", "employee_id": employeeID, "fee": -5,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidationError, env.Error.Code)
	})

	t.Run("employee id must be a uuid", func(t *testing.T) {
		w, _ := serve(r, http.MethodPost, "/cases", map[string]any{
			"client_name": "Jean Valjean", "case_type": "Pénal", "employee_id": "marie",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCaseHandler_Create_UnknownAssignee(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := dossierMock.NewMockService(ctrl)
	svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dossier.CaseResponse{}, dossiererrors.ErrAssignedEmployeeNotFound)

	r := setupRouter("office-1")
	r.POST("/cases", dossier.NewHandler(svc).Create)

	w, env := serve(r, http.MethodPost, "/cases", map[string]any{
		"client_name": "Jean Valjean", "case_type": "Pénal", "employee_id": uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	assert.Equal(t, "assigned employee not found", env.Error.Message)
}

func TestCaseHandler_ListByWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := dossierMock.NewMockService(ctrl)
	r := setupRouter("office-1")
	r.GET("/cases", dossier.NewHandler(svc).ListByWeek)

	svc.EXPECT().ListByWeek(gomock.Any(), "office-1", "2025-W02").
		Return([]dossier.CaseResponse{{ID: "c-1"}}, nil)
	w, env := serve(r, http.MethodGet, "/cases?week=2025-W02", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "c-1")

	svc.EXPECT().ListByWeek(gomock.Any(), "office-1", "").Return([]dossier.CaseResponse{}, nil)
	w, _ = serve(r, http.MethodGet, "/cases", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// rejected at binding, the service is never reached
	w, env = serve(r, http.MethodGet, "/cases?week=bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)

	w, _ = serve(r, http.MethodGet, "/cases?week=2025-W53", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCaseHandler_SetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := dossierMock.NewMockService(ctrl)
	r := setupRouter("office-1")
	r.PATCH("/cases/:id/status", dossier.NewHandler(svc).SetStatus)

	svc.EXPECT().SetStatus(gomock.Any(), "office-1", "c-1", "closed").
		Return(dossier.CaseResponse{ID: "c-1", Status: "closed"}, nil)
	w, env := serve(r, http.MethodPatch, "/cases/c-1/status", map[string]any{"status": "closed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "closed")

	w, _ = serve(r, http.MethodPatch, "/cases/c-1/status", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.EXPECT().SetStatus(gomock.Any(), "office-1", "missing", "closed").
		Return(dossier.CaseResponse{}, dossiererrors.ErrCaseNotFound)
	w, env = serve(r, http.MethodPatch, "/cases/missing/status", map[string]any{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
}

func TestCaseHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := dossierMock.NewMockService(ctrl)
	r := setupRouter("office-1")
	r.DELETE("/cases/:id", dossier.NewHandler(svc).Delete)

	gomock.InOrder(
		svc.EXPECT().Delete(gomock.Any(), "office-1", "c-1").Return(nil),
		svc.EXPECT().Delete(gomock.Any(), "office-1", "c-1").Return(dossiererrors.ErrCaseNotFound),
	)

	w, _ := serve(r, http.MethodDelete, "/cases/c-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = serve(r, http.MethodDelete, "/cases/c-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCaseHandler_ListWeeks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := dossierMock.NewMockService(ctrl)
	svc.EXPECT().ListWeeks(gomock.Any(), "office-1").
		Return(dossier.WeeksResponse{Current: "2025-W03", Weeks: []string{"2025-W02", "2025-W01"}}, nil)

	r := setupRouter("office-1")
	r.GET("/cases/weeks", dossier.NewHandler(svc).ListWeeks)

	w, env := serve(r, http.MethodGet, "/cases/weeks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got dossier.WeeksResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, []string{"2025-W02", "2025-W01"}, got.Weeks)
}
