package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-cabinet/internal/activity"
	"go-cabinet/internal/messaging/kafka/consumer"
	"go-cabinet/internal/shared/clock"
	"go-cabinet/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer journals lifecycle events into the activity table until
// SIGINT/SIGTERM.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database(), cfg.ConnectRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	activityService := activity.NewService(activity.NewRepository(gormDB), clock.System(), logger)

	reader := consumer.NewLifecycleReader(cfg.KafkaBroker, cfg.KafkaGroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeLifecycle(ctx, reader, activityService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
