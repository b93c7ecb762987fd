package dossier

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	dossiererrors "go-cabinet/internal/dossier/errors"
	"go-cabinet/internal/events"
	"go-cabinet/internal/messaging/kafka"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"
	"go-cabinet/internal/shared/contextutil"
	"go-cabinet/internal/week"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxStatusLen matches the varchar(50) status column.
const maxStatusLen = 50

//go:generate mockgen -source=dossier_service.go -destination=mock/dossier_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, companyID string, req CreateCaseRequest) (CaseResponse, error)
	SetStatus(ctx context.Context, companyID, id, status string) (CaseResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ListByWeek(ctx context.Context, companyID, weekKey string) ([]CaseResponse, error)
	ListWeeks(ctx context.Context, companyID string) (WeeksResponse, error)
	GetByID(ctx context.Context, companyID, id string) (CaseResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dossier.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dossier.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		clock:  clk,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateCaseRequest) (CaseResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create case requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	cID, err := uuid.Parse(companyID)
	if err != nil {
		return CaseResponse{}, dossiererrors.ErrInvalidCompanyID
	}

	clientName := strings.TrimSpace(req.ClientName)
	caseType := strings.TrimSpace(req.CaseType)
	if clientName == "" || caseType == "" || strings.TrimSpace(req.EmployeeID) == "" {
		return CaseResponse{}, dossiererrors.ErrMissingRequiredFields
	}
	if req.Fee < 0 {
		return CaseResponse{}, dossiererrors.ErrNegativeFee
	}
	if req.Expense < 0 {
		return CaseResponse{}, dossiererrors.ErrNegativeExpense
	}
	empID, err := uuid.Parse(strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return CaseResponse{}, dossiererrors.ErrInvalidEmployeeID
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = StatusOpen
	}
	if utf8.RuneCountInString(status) > maxStatusLen {
		return CaseResponse{}, dossiererrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create case begin tx failed", zap.Error(err))
		return CaseResponse{}, apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	assignee, err := qtx.FindEmployee(ctx, companyID, empID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("create case rejected, unknown assignee", zap.String("employee_id", empID.String()))
			return CaseResponse{}, dossiererrors.ErrAssignedEmployeeNotFound
		}
		return CaseResponse{}, mapRepositoryError(err)
	}

	now := s.clock.Now()
	c := &Case{
		ID:           uuid.New(),
		CompanyID:    cID,
		ClientName:   clientName,
		CaseType:     caseType,
		EmployeeID:   &assignee.ID,
		EmployeeName: assignee.FullName,
		Fee:          req.Fee,
		Expense:      req.Expense,
		Status:       status,
		Description:  strings.TrimSpace(req.Description),
		WeekKey:      week.Key(now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := qtx.Create(ctx, c); err != nil {
		log.Error("create case persist failed", zap.Error(err))
		return CaseResponse{}, mapRepositoryError(err)
	}

	summary := "Case for " + c.ClientName + " (" + c.CaseType + ") opened by " + c.EmployeeName + ", fee " + strconv.FormatInt(c.Fee, 10)
	if err := s.enqueue(ctx, tx, events.CaseCreated, c, summary); err != nil {
		log.Error("create case outbox persist failed", zap.String("case_id", c.ID.String()), zap.Error(err))
		return CaseResponse{}, apperror.StoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create case commit failed", zap.Error(err))
		return CaseResponse{}, apperror.StoreUnavailable(err)
	}

	log.Info("create case success",
		zap.String("case_id", c.ID.String()),
		zap.String("week_key", c.WeekKey),
	)
	return mapToResponse(*c), nil
}

// SetStatus accepts any transition. Concurrent writers race and the last
// commit wins.
func (s *service) SetStatus(ctx context.Context, companyID, id, status string) (CaseResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return CaseResponse{}, dossiererrors.ErrInvalidCaseID
	}
	status = strings.TrimSpace(status)
	if status == "" || utf8.RuneCountInString(status) > maxStatusLen {
		return CaseResponse{}, dossiererrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("set case status begin tx failed", zap.Error(err))
		return CaseResponse{}, apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return CaseResponse{}, mapRepositoryError(err)
	}

	previous := c.Status
	now := s.clock.Now()
	if err := qtx.UpdateStatus(ctx, companyID, id, status, now); err != nil {
		log.Error("set case status persist failed", zap.String("case_id", id), zap.Error(err))
		return CaseResponse{}, mapRepositoryError(err)
	}
	c.Status = status
	c.UpdatedAt = now

	summary := "Case for " + c.ClientName + " moved from " + previous + " to " + status
	if err := s.enqueue(ctx, tx, events.CaseStatusChanged, c, summary); err != nil {
		log.Error("set case status outbox persist failed", zap.String("case_id", id), zap.Error(err))
		return CaseResponse{}, apperror.StoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("set case status commit failed", zap.Error(err))
		return CaseResponse{}, apperror.StoreUnavailable(err)
	}

	log.Info("set case status success",
		zap.String("case_id", id),
		zap.String("from", previous),
		zap.String("to", status),
	)
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return dossiererrors.ErrInvalidCaseID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete case begin tx failed", zap.Error(err))
		return apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		log.Error("delete case failed", zap.String("case_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.CaseDeleted, c, "Case for "+c.ClientName+" deleted"); err != nil {
		log.Error("delete case outbox persist failed", zap.String("case_id", id), zap.Error(err))
		return apperror.StoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete case commit failed", zap.Error(err))
		return apperror.StoreUnavailable(err)
	}

	log.Info("delete case success", zap.String("case_id", id))
	return nil
}

// ListByWeek lists one bucket. An empty key means the current week.
func (s *service) ListByWeek(ctx context.Context, companyID, weekKey string) ([]CaseResponse, error) {
	weekKey = strings.TrimSpace(weekKey)
	if weekKey == "" {
		weekKey = week.Key(s.clock.Now())
	}
	if err := week.Validate(weekKey); err != nil {
		return nil, dossiererrors.ErrInvalidWeekKey
	}

	cases, err := s.repo.ListByWeek(ctx, companyID, weekKey)
	if err != nil {
		s.logger.Error("list cases by week failed", zap.String("week_key", weekKey), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(cases), nil
}

func (s *service) ListWeeks(ctx context.Context, companyID string) (WeeksResponse, error) {
	weeks, err := s.repo.ListWeeks(ctx, companyID)
	if err != nil {
		s.logger.Error("list case weeks failed", zap.Error(err))
		return WeeksResponse{}, mapRepositoryError(err)
	}
	if weeks == nil {
		weeks = []string{}
	}
	return WeeksResponse{Current: week.Key(s.clock.Now()), Weeks: weeks}, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (CaseResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CaseResponse{}, dossiererrors.ErrInvalidCaseID
	}
	c, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return CaseResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, c *Case, summary string) error {
	attrs := map[string]string{
		"client_name":   c.ClientName,
		"case_type":     c.CaseType,
		"employee_name": c.EmployeeName,
		"status":        c.Status,
		"fee":           strconv.FormatInt(c.Fee, 10),
		"week_key":      c.WeekKey,
	}
	if c.EmployeeID != nil {
		attrs["employee_id"] = c.EmployeeID.String()
	}
	return kafka.EnqueueLifecycle(ctx, s.outbox, tx, events.LifecycleEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateType: events.AggregateCase,
		AggregateID:   c.ID.String(),
		CompanyID:     c.CompanyID.String(),
		ActorID:       contextutil.GetUserID(ctx),
		RequestID:     contextutil.GetRequestID(ctx),
		Summary:       summary,
		Attributes:    attrs,
		OccurredAt:    s.clock.Now(),
	})
}

func mapToResponse(c Case) CaseResponse {
	resp := CaseResponse{
		ID:           c.ID.String(),
		CompanyID:    c.CompanyID.String(),
		ClientName:   c.ClientName,
		CaseType:     c.CaseType,
		EmployeeName: c.EmployeeName,
		Fee:          c.Fee,
		Expense:      c.Expense,
		Status:       c.Status,
		Description:  c.Description,
		WeekKey:      c.WeekKey,
	}
	if c.EmployeeID != nil {
		resp.EmployeeID = c.EmployeeID.String()
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !c.UpdatedAt.IsZero() {
		resp.UpdatedAt = c.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(cases []Case) []CaseResponse {
	res := make([]CaseResponse, len(cases))
	for i, c := range cases {
		res[i] = mapToResponse(c)
	}
	return res
}
