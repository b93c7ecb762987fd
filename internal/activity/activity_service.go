package activity

import (
	"context"
	"strings"
	"time"

	activityerrors "go-cabinet/internal/activity/errors"
	"go-cabinet/internal/events"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock

type Service interface {
	// Record journals a lifecycle event. Redelivery of the same event id is
	// a no-op and returns false.
	Record(ctx context.Context, evt events.LifecycleEvent) (bool, error)
	List(ctx context.Context, companyID string, q ListActivityQuery) ([]ActivityResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Record(ctx context.Context, evt events.LifecycleEvent) (bool, error) {
	id, err := uuid.Parse(evt.EventID)
	if err != nil {
		return false, activityerrors.ErrInvalidEvent
	}
	companyID, err := uuid.Parse(evt.CompanyID)
	if err != nil || strings.TrimSpace(evt.EventType) == "" {
		return false, activityerrors.ErrInvalidEvent
	}

	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.clock.Now()
	}

	inserted, err := s.repo.Insert(ctx, &Activity{
		ID:            id,
		CompanyID:     companyID,
		EventType:     evt.EventType,
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		ActorID:       evt.ActorID,
		RequestID:     evt.RequestID,
		Summary:       evt.Summary,
		OccurredAt:    occurredAt.UTC(),
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		s.logger.Error("record activity failed", zap.String("event_id", evt.EventID), zap.Error(err))
		return false, apperror.StoreUnavailable(err)
	}
	if !inserted {
		s.logger.Debug("activity already recorded", zap.String("event_id", evt.EventID))
	}
	return inserted, nil
}

func (s *service) List(ctx context.Context, companyID string, q ListActivityQuery) ([]ActivityResponse, error) {
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit < 0 || q.Limit > MaxLimit {
		return nil, activityerrors.ErrInvalidLimit
	}
	q.AggregateType = strings.ToLower(strings.TrimSpace(q.AggregateType))

	items, err := s.repo.List(ctx, companyID, q)
	if err != nil {
		s.logger.Error("list activities failed", zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}

	resp := make([]ActivityResponse, len(items))
	for i, a := range items {
		resp[i] = ActivityResponse{
			ID:            a.ID.String(),
			EventType:     a.EventType,
			AggregateType: a.AggregateType,
			AggregateID:   a.AggregateID,
			ActorID:       a.ActorID,
			RequestID:     a.RequestID,
			Summary:       a.Summary,
			OccurredAt:    a.OccurredAt.UTC().Format(time.RFC3339),
		}
	}
	return resp, nil
}
