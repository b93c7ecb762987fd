package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-cabinet/internal/activity"
	activityerrors "go-cabinet/internal/activity/errors"
	activityMock "go-cabinet/internal/activity/mock"
	"go-cabinet/internal/events"
	"go-cabinet/internal/shared/apperror"
	"go-cabinet/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func lifecycle(companyID, eventType, aggregate string) events.LifecycleEvent {
	return events.LifecycleEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateType: aggregate,
		AggregateID:   uuid.NewString(),
		CompanyID:     companyID,
		Summary:       eventType,
		OccurredAt:    fixedNow,
	}
}

func TestActivityService_Record(t *testing.T) {
	t.Run("first delivery inserts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo, clock.NewFixed(fixedNow))
		evt := lifecycle(uuid.NewString(), events.CaseCreated, events.AggregateCase)

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *activity.Activity) (bool, error) {
				assert.Equal(t, evt.EventID, a.ID.String())
				assert.Equal(t, evt.CompanyID, a.CompanyID.String())
				assert.Equal(t, events.CaseCreated, a.EventType)
				assert.Equal(t, fixedNow, a.CreatedAt)
				return true, nil
			})

		inserted, err := svc.Record(context.Background(), evt)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("redelivery is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo, clock.NewFixed(fixedNow))
		evt := lifecycle(uuid.NewString(), events.CaseCreated, events.AggregateCase)

		gomock.InOrder(
			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(true, nil),
			repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(false, nil),
		)

		inserted, err := svc.Record(context.Background(), evt)
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = svc.Record(context.Background(), evt)
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("broken events never reach the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)
		svc := activity.NewService(repo, nil)
		companyID := uuid.NewString()

		noID := lifecycle(companyID, events.CaseCreated, events.AggregateCase)
		noID.EventID = ""
		noCompany := lifecycle("", events.CaseCreated, events.AggregateCase)
		noType := lifecycle(companyID, "", events.AggregateCase)

		for _, evt := range []events.LifecycleEvent{noID, noCompany, noType} {
			_, err := svc.Record(context.Background(), evt)
			assert.ErrorIs(t, err, activityerrors.ErrInvalidEvent)
		}
	})

	t.Run("missing occurred_at defaults to now", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo, clock.NewFixed(fixedNow))
		evt := lifecycle(uuid.NewString(), events.EmployeeCreated, events.AggregateEmployee)
		evt.OccurredAt = time.Time{}

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *activity.Activity) (bool, error) {
				assert.Equal(t, fixedNow, a.OccurredAt)
				return true, nil
			})

		_, err := svc.Record(context.Background(), evt)
		require.NoError(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))

		_, err := activity.NewService(repo, nil).Record(context.Background(),
			lifecycle(uuid.NewString(), events.CaseCreated, events.AggregateCase))
		assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	})
}

func TestActivityService_List(t *testing.T) {
	companyID := uuid.NewString()
	row := activity.Activity{
		ID:            uuid.New(),
		CompanyID:     uuid.MustParse(companyID),
		EventType:     events.EmployeeCreated,
		AggregateType: events.AggregateEmployee,
		Summary:       "Employee hired",
		OccurredAt:    fixedNow,
	}

	t.Run("default limit and normalized filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		repo.EXPECT().List(gomock.Any(), companyID, activity.ListActivityQuery{
			Limit:         activity.DefaultLimit,
			AggregateType: "employee",
		}).Return([]activity.Activity{row}, nil)

		got, err := activity.NewService(repo, nil).List(context.Background(), companyID,
			activity.ListActivityQuery{AggregateType: " Employee "})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, row.ID.String(), got[0].ID)
		assert.Equal(t, "2025-01-06T09:00:00Z", got[0].OccurredAt)
	})

	t.Run("limit bounds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		svc := activity.NewService(repo, nil)

		_, err := svc.List(context.Background(), companyID, activity.ListActivityQuery{Limit: activity.MaxLimit + 1})
		assert.ErrorIs(t, err, activityerrors.ErrInvalidLimit)
		_, err = svc.List(context.Background(), companyID, activity.ListActivityQuery{Limit: -1})
		assert.ErrorIs(t, err, activityerrors.ErrInvalidLimit)

		repo.EXPECT().List(gomock.Any(), companyID, activity.ListActivityQuery{Limit: 1}).Return(nil, nil)
		got, err := svc.List(context.Background(), companyID, activity.ListActivityQuery{Limit: 1})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := activityMock.NewMockRepository(ctrl)
		repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := activity.NewService(repo, nil).List(context.Background(), companyID, activity.ListActivityQuery{})
		assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	})
}
