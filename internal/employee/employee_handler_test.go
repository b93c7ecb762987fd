package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cabinet/internal/employee"
	employeeerrors "go-cabinet/internal/employee/errors"
	employeeMock "go-cabinet/internal/employee/mock"
	"go-cabinet/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(companyID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
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

func TestEmployeeHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	r := setupRouter("office-1")
	r.POST("/employees", employee.NewHandler(svc).Create)

	t.Run("created", func(t *testing.T) {
		svc.EXPECT().
			Create(gomock.Any(), "office-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Marie Dubois", req.FullName)
				return employee.EmployeeResponse{ID: "e-1", FullName: req.FullName, CommissionRate: req.CommissionRate}, nil
			})

		w, env := serve(r, http.MethodPost, "/employees", map[string]any{
			"full_name": "Marie Dubois", "role": "Avocat Junior", "base_salary": 5000,
			"commission_rate": 15, "hire_date": "2024-09-02",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("commission above 100 rejected at binding", func(t *testing.T) {
		w, env := serve(r, http.MethodPost, "/employees", map[string]any{
			"full_name": "Marie Dubois", "role": "Avocat Junior", "commission_rate": 150, "hire_date": "2024-09-02",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidationError, env.Error.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w, env := serve(r, http.MethodPost, "/employees", map[string]any{"role": "Avocat Junior", "hire_date": "2024-09-02"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Ok)
	})
}

func TestEmployeeHandler_Create_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists)

	r := setupRouter("office-1")
	r.POST("/employees", employee.NewHandler(svc).Create)

	w, env := serve(r, http.MethodPost, "/employees", map[string]any{
		"full_name": "Marie Dubois", "role": "Avocat Junior", "hire_date": "2024-09-02",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeConflict, env.Error.Code)
}

func TestEmployeeHandler_GetAll_FilterSortPaginate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().GetAll(gomock.Any(), "office-1").
		Return([]employee.EmployeeResponse{
			{ID: "1", FullName: "Claire Petit", Role: "Secrétaire", BaseSalary: 3000, Status: "active"},
			{ID: "2", FullName: "Alain Roux", Role: "Avocat Senior", BaseSalary: 8000, Status: "active"},
			{ID: "3", FullName: "Bruno Leroy", Role: "Avocat Junior", BaseSalary: 5000, Status: "inactive"},
		}, nil).
		Times(3)

	r := setupRouter("office-1")
	r.GET("/employees", employee.NewHandler(svc).GetAll)

	t.Run("default sort by name", func(t *testing.T) {
		_, env := serve(r, http.MethodGet, "/employees", nil)
		var got []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 3)
		assert.Equal(t, []string{"2", "3", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
		assert.EqualValues(t, 3, env.Meta["total"])
	})

	t.Run("filter by role and status", func(t *testing.T) {
		_, env := serve(r, http.MethodGet, "/employees?q=avocat&status=active", nil)
		var got []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("salary desc with paging", func(t *testing.T) {
		_, env := serve(r, http.MethodGet, "/employees?sort_by=salary&sort_dir=desc&page=2&page_size=2", nil)
		var got []employee.EmployeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})
}

func TestEmployeeHandler_Options(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().GetOptions(gomock.Any(), "office-1").
		Return([]employee.EmployeeOptionResponse{{ID: "e-1", FullName: "Marie Dubois"}}, nil)

	r := setupRouter("office-1")
	r.GET("/employees/options", employee.NewHandler(svc).GetOptions)

	w, env := serve(r, http.MethodGet, "/employees/options", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Marie Dubois")
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	svc.EXPECT().GetByID(gomock.Any(), "office-1", "abc").
		Return(employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound)

	r := setupRouter("office-1")
	r.GET("/employees/:id", employee.NewHandler(svc).GetByID)

	w, env := serve(r, http.MethodGet, "/employees/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
}

func TestEmployeeHandler_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := employeeMock.NewMockService(ctrl)
	h := employee.NewHandler(svc)
	r := setupRouter("office-1")
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Delete)

	svc.EXPECT().Update(gomock.Any(), "office-1", "e-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{ID: id, Status: req.Status}, nil
		})
	w, _ := serve(r, http.MethodPut, "/employees/e-1", map[string]any{
		"full_name": "Marie Dubois", "role": "Avocat Senior", "hire_date": "2024-09-02", "status": "inactive",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = serve(r, http.MethodPut, "/employees/e-1", map[string]any{
		"full_name": "Marie Dubois", "role": "Avocat Senior", "hire_date": "2024-09-02", "status": "retired",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.EXPECT().Delete(gomock.Any(), "office-1", "e-1").Return(nil)
	w, _ = serve(r, http.MethodDelete, "/employees/e-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.EXPECT().Delete(gomock.Any(), "office-1", "gone").Return(employeeerrors.ErrEmployeeNotFound)
	w, _ = serve(r, http.MethodDelete, "/employees/gone", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
