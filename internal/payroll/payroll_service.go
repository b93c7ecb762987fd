package payroll

import (
	"context"
	"strings"
	"time"

	payrollerrors "go-cabinet/internal/payroll/errors"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"
	"go-cabinet/internal/shared/contextutil"
	"go-cabinet/internal/week"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock

type Service interface {
	Compute(ctx context.Context, companyID, weekKey string) (WeeklyPayrollResponse, error)
	ComputeCurrent(ctx context.Context, companyID string) (WeeklyPayrollResponse, error)
	Summary(ctx context.Context, companyID, weekKey string) (WeeklySummaryResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Compute(ctx context.Context, companyID, weekKey string) (WeeklyPayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	weekKey = strings.TrimSpace(weekKey)

	start, end, snap, err := s.load(ctx, companyID, weekKey)
	if err != nil {
		return WeeklyPayrollResponse{}, err
	}

	lines, totals := Calculate(snap)
	log.Debug("weekly payroll computed",
		zap.String("company_id", companyID),
		zap.String("week_key", weekKey),
		zap.Int("employees", totals.Employees),
		zap.Int("cases", totals.Cases),
		zap.Int64("total_compensation", totals.TotalCompensation),
	)

	return WeeklyPayrollResponse{
		WeekKey:   weekKey,
		WeekStart: start.Format(dateLayout),
		WeekEnd:   end.AddDate(0, 0, -1).Format(dateLayout),
		Lines:     lines,
		Totals:    totals,
	}, nil
}

func (s *service) ComputeCurrent(ctx context.Context, companyID string) (WeeklyPayrollResponse, error) {
	return s.Compute(ctx, companyID, week.Key(s.clock.Now()))
}

func (s *service) Summary(ctx context.Context, companyID, weekKey string) (WeeklySummaryResponse, error) {
	weekKey = strings.TrimSpace(weekKey)
	start, end, snap, err := s.load(ctx, companyID, weekKey)
	if err != nil {
		return WeeklySummaryResponse{}, err
	}

	_, totals := Calculate(snap)
	resp := Summarize(snap, totals)
	resp.WeekKey = weekKey
	resp.WeekStart = start.Format(dateLayout)
	resp.WeekEnd = end.AddDate(0, 0, -1).Format(dateLayout)
	return resp, nil
}

func (s *service) load(ctx context.Context, companyID, weekKey string) (time.Time, time.Time, Snapshot, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return time.Time{}, time.Time{}, Snapshot{}, payrollerrors.ErrInvalidCompanyID
	}
	start, end, err := week.Bounds(weekKey)
	if err != nil {
		return time.Time{}, time.Time{}, Snapshot{}, payrollerrors.ErrInvalidWeekKey
	}

	snap, err := s.repo.Snapshot(ctx, companyID, weekKey)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("payroll snapshot failed",
			zap.String("company_id", companyID),
			zap.String("week_key", weekKey),
			zap.Error(err),
		)
		return time.Time{}, time.Time{}, Snapshot{}, apperror.StoreUnavailable(err)
	}
	return start, end, snap, nil
}
