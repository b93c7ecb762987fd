package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	activityerrors "go-cabinet/internal/activity/errors"
	"go-cabinet/internal/events"
	consumerMock "go-cabinet/internal/messaging/kafka/consumer/mock"
	"go-cabinet/internal/shared/apperror"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var testBackoff = Backoff{Initial: time.Millisecond, Max: 4 * time.Millisecond, Factor: 2}

func message(t *testing.T, offset int64, evt events.LifecycleEvent) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(evt)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.TopicFor(evt.AggregateType), Offset: offset, Value: b}
}

func lifecycleEvent(eventType, aggregate, companyID string) events.LifecycleEvent {
	return events.LifecycleEvent{EventID: uuid.NewString(), EventType: eventType, AggregateType: aggregate, CompanyID: companyID}
}

// drained ends the loop on the next fetch.
func drained(cancel context.CancelFunc) func(context.Context) (kafkago.Message, error) {
	return func(ctx context.Context) (kafkago.Message, error) {
		cancel()
		return kafkago.Message{}, ctx.Err()
	}
}

func TestConsumeLifecycle_CommitsHandledMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := consumerMock.NewMockMessageReader(ctrl)
	recorder := consumerMock.NewMockActivityRecorder(ctrl)

	companyID := uuid.NewString()
	created := lifecycleEvent(events.CaseCreated, events.AggregateCase, companyID)
	invalid := lifecycleEvent(events.CaseDeleted, events.AggregateCase, "")

	first := message(t, 1, created)
	redelivered := message(t, 2, created)
	garbage := kafkago.Message{Topic: events.CaseLifecycleTopic, Offset: 3, Value: []byte("not json")}
	rejectedMsg := message(t, 4, invalid)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(first, nil),
		recorder.EXPECT().Record(gomock.Any(), created).Return(true, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), first).Return(nil),

		reader.EXPECT().FetchMessage(gomock.Any()).Return(redelivered, nil),
		recorder.EXPECT().Record(gomock.Any(), created).Return(false, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), redelivered).Return(nil),

		reader.EXPECT().FetchMessage(gomock.Any()).Return(garbage, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), garbage).Return(nil),

		reader.EXPECT().FetchMessage(gomock.Any()).Return(rejectedMsg, nil),
		recorder.EXPECT().Record(gomock.Any(), invalid).Return(false, activityerrors.ErrInvalidEvent),
		reader.EXPECT().CommitMessages(gomock.Any(), rejectedMsg).Return(nil),

		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(drained(cancel)),
	)

	consumeLifecycle(ctx, reader, recorder, testBackoff, zap.NewNop())
}

func TestConsumeLifecycle_StoreFailureHoldsPartition(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := consumerMock.NewMockMessageReader(ctrl)
	recorder := consumerMock.NewMockActivityRecorder(ctrl)

	companyID := uuid.NewString()
	failed := lifecycleEvent(events.EmployeeUpdated, events.AggregateEmployee, companyID)
	next := lifecycleEvent(events.CaseCreated, events.AggregateCase, companyID)
	failedMsg := message(t, 5, failed)
	nextMsg := message(t, 6, next)
	storeDown := apperror.StoreUnavailable(errors.New("db down"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Offset 5 is recorded before offset 6 is fetched or committed.
	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(failedMsg, nil),
		recorder.EXPECT().Record(gomock.Any(), failed).Return(false, storeDown),
		recorder.EXPECT().Record(gomock.Any(), failed).Return(false, storeDown),
		recorder.EXPECT().Record(gomock.Any(), failed).Return(true, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), failedMsg).Return(nil),

		reader.EXPECT().FetchMessage(gomock.Any()).Return(nextMsg, nil),
		recorder.EXPECT().Record(gomock.Any(), next).Return(true, nil),
		reader.EXPECT().CommitMessages(gomock.Any(), nextMsg).Return(nil),

		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(drained(cancel)),
	)

	consumeLifecycle(ctx, reader, recorder, testBackoff, zap.NewNop())
}

func TestConsumeLifecycle_ShutdownDuringRetryLeavesOffset(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := consumerMock.NewMockMessageReader(ctrl)
	recorder := consumerMock.NewMockActivityRecorder(ctrl)

	evt := lifecycleEvent(events.CaseStatusChanged, events.AggregateCase, uuid.NewString())
	msg := message(t, 7, evt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		recorder.EXPECT().Record(gomock.Any(), evt).
			DoAndReturn(func(context.Context, events.LifecycleEvent) (bool, error) {
				cancel()
				return false, apperror.StoreUnavailable(errors.New("db down"))
			}),
		reader.EXPECT().FetchMessage(gomock.Any()).Return(kafkago.Message{}, context.Canceled),
	)
	reader.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Times(0)

	consumeLifecycle(ctx, reader, recorder, testBackoff, zap.NewNop())
}

func TestBackoff_Next(t *testing.T) {
	b := Backoff{Initial: time.Second, Max: 5 * time.Second, Factor: 2}

	assert.Equal(t, 2*time.Second, b.next(time.Second))
	assert.Equal(t, 4*time.Second, b.next(2*time.Second))
	assert.Equal(t, 5*time.Second, b.next(4*time.Second))
}
