package app

import (
	"go-cabinet/internal/middleware"
	"go-cabinet/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp opens the stores, migrates the schema and mounts every module on
// router. The returned func closes the stores and must run after shutdown.
func BuildApp(router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database(), cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := Migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("schema migrated")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	router.Use(
		middleware.RequestID(),
		middleware.SecurityHeaders(cfg.IsProduction()),
	)

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, logger); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
