package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	employeeerrors "go-cabinet/internal/employee/errors"
	"go-cabinet/internal/events"
	"go-cabinet/internal/messaging/kafka"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"
	"go-cabinet/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	optionsCacheTTL          = time.Hour
	dateLayout               = "2006-01-02"
)

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	ListActive(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		clock:  clk,
		logger: l,
	}
}

type validatedFields struct {
	fullName string
	role     string
	hireDate time.Time
	status   string
}

func validateFields(fullName, role string, baseSalary int64, commissionRate int, hireDate, status string) (validatedFields, error) {
	v := validatedFields{
		fullName: strings.TrimSpace(fullName),
		role:     strings.TrimSpace(role),
		status:   strings.ToLower(strings.TrimSpace(status)),
	}
	if v.fullName == "" || v.role == "" {
		return v, employeeerrors.ErrMissingRequiredFields
	}
	if baseSalary < 0 {
		return v, employeeerrors.ErrInvalidBaseSalary
	}
	if commissionRate < 0 || commissionRate > 100 {
		return v, employeeerrors.ErrInvalidCommissionRate
	}

	d, err := time.Parse(dateLayout, strings.TrimSpace(hireDate))
	if err != nil {
		return v, employeeerrors.ErrInvalidHireDate
	}
	v.hireDate = d

	switch v.status {
	case "":
		v.status = StatusActive
	case StatusActive, StatusInactive:
	default:
		return v, employeeerrors.ErrInvalidStatus
	}
	return v, nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("role", req.Role),
	)

	cID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	fields, err := validateFields(req.FullName, req.Role, req.BaseSalary, req.CommissionRate, req.HireDate, req.Status)
	if err != nil {
		log.Warn("create employee rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	now := s.clock.Now()
	empl := &Employee{
		ID:             uuid.New(),
		CompanyID:      cID,
		FullName:       fields.fullName,
		Role:           fields.role,
		BaseSalary:     req.BaseSalary,
		CommissionRate: req.CommissionRate,
		HireDate:       fields.hireDate,
		Status:         fields.status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeCreated, empl, "Employee "+empl.FullName+" hired as "+empl.Role); err != nil {
		log.Error("create employee outbox persist failed", zap.String("employee_id", empl.ID.String()), zap.Error(err))
		return EmployeeResponse{}, apperror.StoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreUnavailable(err)
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("create employee success", zap.String("employee_id", empl.ID.String()))

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

// ListActive returns the payroll-eligible employees.
func (s *service) ListActive(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list active employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Collapse concurrent misses into one query.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{ID: e.ID.String(), FullName: e.FullName, Role: e.Role}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	fields, err := validateFields(req.FullName, req.Role, req.BaseSalary, req.CommissionRate, req.HireDate, req.Status)
	if err != nil {
		log.Warn("update employee rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	changes := describeChanges(*empl, fields, req)

	empl.FullName = fields.fullName
	empl.Role = fields.role
	empl.BaseSalary = req.BaseSalary
	empl.CommissionRate = req.CommissionRate
	empl.HireDate = fields.hireDate
	empl.Status = fields.status
	empl.UpdatedAt = s.clock.Now()

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	summary := "Employee " + empl.FullName + " updated"
	if changes != "" {
		summary += ": " + changes
	}
	if err := s.enqueue(ctx, tx, events.EmployeeUpdated, empl, summary); err != nil {
		log.Error("update employee outbox persist failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.StoreUnavailable(err)
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Delete removes the employee. Their cases keep the employee_name snapshot.
func (s *service) Delete(ctx context.Context, companyID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		log.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeDeleted, empl, "Employee "+empl.FullName+" removed"); err != nil {
		log.Error("delete employee outbox persist failed", zap.Error(err))
		return apperror.StoreUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return apperror.StoreUnavailable(err)
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, eventType string, empl *Employee, summary string) error {
	return kafka.EnqueueLifecycle(ctx, s.outbox, tx, events.LifecycleEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateType: events.AggregateEmployee,
		AggregateID:   empl.ID.String(),
		CompanyID:     empl.CompanyID.String(),
		ActorID:       contextutil.GetUserID(ctx),
		RequestID:     contextutil.GetRequestID(ctx),
		Summary:       summary,
		Attributes: map[string]string{
			"full_name": empl.FullName,
			"role":      empl.Role,
			"status":    empl.Status,
		},
		OccurredAt: s.clock.Now(),
	})
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func describeChanges(old Employee, fields validatedFields, req UpdateEmployeeRequest) string {
	var parts []string
	if old.Role != fields.role {
		parts = append(parts, fmt.Sprintf("role %s -> %s", old.Role, fields.role))
	}
	if old.BaseSalary != req.BaseSalary {
		parts = append(parts, "base salary "+strconv.FormatInt(old.BaseSalary, 10)+" -> "+strconv.FormatInt(req.BaseSalary, 10))
	}
	if old.CommissionRate != req.CommissionRate {
		parts = append(parts, fmt.Sprintf("commission %d%% -> %d%%", old.CommissionRate, req.CommissionRate))
	}
	if old.Status != fields.status {
		parts = append(parts, fmt.Sprintf("status %s -> %s", old.Status, fields.status))
	}
	return strings.Join(parts, ", ")
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		CompanyID:      empl.CompanyID.String(),
		FullName:       empl.FullName,
		Role:           empl.Role,
		BaseSalary:     empl.BaseSalary,
		CommissionRate: empl.CommissionRate,
		HireDate:       empl.HireDate.Format(dateLayout),
		Status:         empl.Status,
	}
	if !empl.CreatedAt.IsZero() {
		resp.CreatedAt = empl.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !empl.UpdatedAt.IsZero() {
		resp.UpdatedAt = empl.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
