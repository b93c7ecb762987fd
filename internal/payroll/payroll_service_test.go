package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-cabinet/internal/payroll"
	payrollerrors "go-cabinet/internal/payroll/errors"
	payrollMock "go-cabinet/internal/payroll/mock"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func marieSnapshot() payroll.Snapshot {
	marie := uuid.MustParse("5f0c7f39-8d4e-4c41-9d55-0b7e3f1d2a10")
	return payroll.Snapshot{
		Employees: []payroll.EmployeeRow{{ID: marie, FullName: "Marie Dubois", Role: "Avocat Senior", BaseSalary: 8000, CommissionRate: 30}},
		Cases: []payroll.CaseRow{
			{ID: uuid.New(), EmployeeID: &marie, Fee: 3000, Expense: 200, Status: "open"},
			{ID: uuid.New(), EmployeeID: &marie, Fee: 5000, Status: "closed"},
		},
	}
}

func newRepo(t *testing.T) *payrollMock.MockRepository {
	return payrollMock.NewMockRepository(gomock.NewController(t))
}

func TestPayrollService_Compute(t *testing.T) {
	companyID := uuid.NewString()

	t.Run("weekly lines and bounds", func(t *testing.T) {
		repo := newRepo(t)
		repo.EXPECT().Snapshot(gomock.Any(), companyID, "2025-W01").Return(marieSnapshot(), nil)
		svc := payroll.NewService(repo, nil)

		resp, err := svc.Compute(context.Background(), companyID, "2025-W01")
		require.NoError(t, err)
		assert.Equal(t, "2024-12-30", resp.WeekStart)
		assert.Equal(t, "2025-01-05", resp.WeekEnd)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, int64(2400), resp.Lines[0].Commissions)
		assert.Equal(t, int64(10400), resp.Lines[0].TotalCompensation)
	})

	t.Run("repeat calls give identical output", func(t *testing.T) {
		repo := newRepo(t)
		repo.EXPECT().Snapshot(gomock.Any(), companyID, "2025-W01").Return(marieSnapshot(), nil).Times(2)
		svc := payroll.NewService(repo, nil)

		first, err := svc.Compute(context.Background(), companyID, "2025-W01")
		require.NoError(t, err)
		second, err := svc.Compute(context.Background(), companyID, "2025-W01")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("invalid week is rejected before reading", func(t *testing.T) {
		repo := newRepo(t)
		repo.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		svc := payroll.NewService(repo, nil)
		for _, key := range []string{"", "2025-W54", "25-W01"} {
			_, err := svc.Compute(context.Background(), companyID, key)
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidWeekKey, key)
		}
	})

	t.Run("invalid company", func(t *testing.T) {
		_, err := payroll.NewService(newRepo(t), nil).Compute(context.Background(), "acme", "2025-W01")
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidCompanyID)
	})

	t.Run("store failure -> unavailable", func(t *testing.T) {
		repo := newRepo(t)
		repo.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(payroll.Snapshot{}, errors.New("could not serialize access"))

		_, err := payroll.NewService(repo, nil).Compute(context.Background(), companyID, "2025-W01")
		assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
		assert.Equal(t, 503, apperror.ToHTTP(err).Status)
	})

	t.Run("empty office", func(t *testing.T) {
		repo := newRepo(t)
		repo.EXPECT().Snapshot(gomock.Any(), gomock.Any(), gomock.Any()).Return(payroll.Snapshot{}, nil)

		resp, err := payroll.NewService(repo, nil).Compute(context.Background(), companyID, "2025-W01")
		require.NoError(t, err)
		assert.NotNil(t, resp.Lines)
		assert.Empty(t, resp.Lines)
		assert.Zero(t, resp.Totals.TotalCompensation)
	})
}

func TestPayrollService_ComputeCurrent(t *testing.T) {
	repo := newRepo(t)
	repo.EXPECT().Snapshot(gomock.Any(), gomock.Any(), "2025-W01").Return(payroll.Snapshot{}, nil)
	clk := clock.NewFixed(time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC))

	resp, err := payroll.NewService(repo, clk).ComputeCurrent(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "2025-W01", resp.WeekKey)
}

func TestPayrollService_Summary(t *testing.T) {
	repo := newRepo(t)
	repo.EXPECT().Snapshot(gomock.Any(), gomock.Any(), "2025-W01").Return(marieSnapshot(), nil)

	resp, err := payroll.NewService(repo, nil).Summary(context.Background(), uuid.NewString(), "2025-W01")
	require.NoError(t, err)
	assert.Equal(t, "2025-W01", resp.WeekKey)
	assert.Equal(t, 2, resp.CaseCount)
	assert.Equal(t, int64(8000), resp.TotalFees)
	assert.Equal(t, int64(200), resp.TotalExpenses)
	assert.Equal(t, int64(7800), resp.NetRevenue)
	assert.Equal(t, 1, resp.ByStatus["closed"])
	assert.Equal(t, int64(10400), resp.PayrollTotal)
}
