package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-cabinet/internal/events"
	"go-cabinet/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

//go:generate mockgen -source=activity_consumer.go -destination=mock/activity_consumer_mock.go -package=mock

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, evt events.LifecycleEvent) (bool, error)
}

// Backoff spaces out attempts to record a message the store refused.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
}

var DefaultBackoff = Backoff{Initial: 500 * time.Millisecond, Max: 30 * time.Second, Factor: 2}

func (b Backoff) next(delay time.Duration) time.Duration {
	delay = time.Duration(float64(delay) * b.Factor)
	if delay > b.Max {
		delay = b.Max
	}
	return delay
}

// ConsumeLifecycle journals case and employee lifecycle events until ctx is
// done. Undecodable or invalid messages are committed and skipped. A store
// failure holds the partition: the same message is retried with backoff and
// nothing further is fetched until it is recorded, since a later commit
// would move the group offset past it.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	recorder ActivityRecorder,
	logger *zap.Logger,
) {
	consumeLifecycle(ctx, reader, recorder, DefaultBackoff, logger)
}

func consumeLifecycle(ctx context.Context, reader MessageReader, recorder ActivityRecorder, b Backoff, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, recorder, msg, b, log)
	}
}

func handleMessage(ctx context.Context, reader MessageReader, recorder ActivityRecorder, msg kafkago.Message, b Backoff, log *zap.Logger) {
	var evt events.LifecycleEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Error("decode lifecycle event failed",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		commit(ctx, reader, msg, log)
		return
	}

	inserted, err := record(ctx, recorder, evt, b, log)
	if err != nil {
		if rejected(err) {
			log.Warn("lifecycle event rejected, skipping",
				zap.String("event_id", evt.EventID),
				zap.String("event_type", evt.EventType),
				zap.Error(err),
			)
			commit(ctx, reader, msg, log)
			return
		}
		log.Info("consumer stopping before event was recorded",
			zap.String("event_id", evt.EventID),
			zap.Int64("offset", msg.Offset),
		)
		return
	}

	if !commit(ctx, reader, msg, log) {
		return
	}

	if inserted {
		log.Info("activity recorded",
			zap.String("event_id", evt.EventID),
			zap.String("event_type", evt.EventType),
			zap.String("company_id", evt.CompanyID),
		)
	} else {
		log.Debug("duplicate lifecycle event skipped", zap.String("event_id", evt.EventID))
	}
}

// record retries store failures until the event is journaled, the event is
// rejected, or ctx is done.
func record(ctx context.Context, recorder ActivityRecorder, evt events.LifecycleEvent, b Backoff, log *zap.Logger) (bool, error) {
	delay := b.Initial
	for attempt := 1; ; attempt++ {
		inserted, err := recorder.Record(ctx, evt)
		if err == nil || rejected(err) {
			return inserted, err
		}

		log.Error("record activity failed, retrying",
			zap.String("event_id", evt.EventID),
			zap.String("company_id", evt.CompanyID),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(delay):
		}
		delay = b.next(delay)
	}
}

// rejected reports a client-side error: the event itself is bad and retrying
// cannot help.
func rejected(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < 500
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit lifecycle message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return false
	}
	return true
}

// NewLifecycleReader builds a group reader over both lifecycle topics.
func NewLifecycleReader(broker, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		GroupID:     groupID,
		GroupTopics: []string{events.CaseLifecycleTopic, events.EmployeeLifecycleTopic},
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
}
