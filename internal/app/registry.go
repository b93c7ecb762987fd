package app

import (
	"database/sql"

	"go-cabinet/internal/activity"
	"go-cabinet/internal/auth"
	"go-cabinet/internal/dossier"
	"go-cabinet/internal/employee"
	"go-cabinet/internal/messaging/kafka"
	"go-cabinet/internal/middleware"
	"go-cabinet/internal/payroll"
	"go-cabinet/internal/rbac"
	"go-cabinet/internal/rbac/infra"
	"go-cabinet/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	clk := clock.System()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	dossierRepo := dossier.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	activityRepo := activity.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	policyRepo := rbac.NewFileRepository(cfg.RBACPolicyPath)

	// --- Access policy ---
	rbacService := rbac.NewService(policyRepo, infra.NewEnforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, clk, logger)
	dossierService := dossier.NewService(db, dossierRepo, outboxRepo, clk, logger)
	payrollService := payroll.NewService(payrollRepo, clk, logger)
	activityService := activity.NewService(activityRepo, clk, logger)
	authService := auth.NewService(authRepo, rbacService, employeeService, auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, clk, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Secure:     cfg.CookieSecure,
		AccessTTL:  int(cfg.AccessTokenTTL.Seconds()),
		RefreshTTL: int(cfg.RefreshTokenTTL.Seconds()),
	})
	dossierHandler := dossier.NewHandler(dossierService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	activityHandler := activity.NewHandler(activityService)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	public := api.Group("", middleware.ContextLogger(logger))
	secured := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret), middleware.ContextLogger(logger))
	{
		auth.RegisterRoutes(public, secured, authHandler, rbacService)
		dossier.RegisterRoutes(secured, dossierHandler, rbacService, rdb, cfg.IdempotencyTTL)
		employee.RegisterRoutes(secured, employeeHandler, rbacService)
		payroll.RegisterRoutes(secured, payrollHandler, rbacService)
		activity.RegisterRoutes(secured, activityHandler, rbacService)
		rbac.RegisterRoutes(secured, rbacHandler, rbacService)
	}

	return nil
}
