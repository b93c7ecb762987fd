package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-cabinet/internal/events"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{ID: "e-1", Topic: "t", Payload: []byte(`{}`), Status: OutboxStatusPending}
	assert.NoError(t, ValidateOutboxEvent(valid))

	noID := valid
	noID.ID = ""
	assert.Error(t, ValidateOutboxEvent(noID))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))
}

func TestEnqueueLifecycle_WritesInsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	evt := events.LifecycleEvent{
		EventID:       "5f0c2a8e-0000-4000-8000-000000000001",
		EventType:     events.CaseCreated,
		AggregateType: events.AggregateCase,
		AggregateID:   "case-1",
		CompanyID:     "office-1",
		RequestID:     "rid-1",
		OccurredAt:    time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(evt.EventID, "rid-1", events.AggregateCase, "case-1", events.CaseCreated,
			events.CaseLifecycleTopic, payload, OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, EnqueueLifecycle(context.Background(), NewOutboxRepository(db), tx, evt))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueueLifecycle_NilRepo(t *testing.T) {
	assert.NoError(t, EnqueueLifecycle(context.Background(), nil, nil, events.LifecycleEvent{}))
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("e-1", "rid-1", "case", "case-1", "case_created", events.CaseLifecycleTopic, []byte(`{}`), OutboxStatusPending, 0, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 10).
		WillReturnRows(rows)

	got, err := NewOutboxRepository(db).ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rid-1", got[0].RequestID)
	assert.Equal(t, events.CaseLifecycleTopic, got[0].Topic)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).WillReturnError(errors.New("boom"))
	_, err = NewOutboxRepository(db).ListPending(context.Background(), 10)
	assert.Error(t, err)
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e-1", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e-2", OutboxStatusFailed, "timeout").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.MarkSent(context.Background(), "e-1"))
	require.NoError(t, repo.MarkFailed(context.Background(), "e-2", "timeout"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
