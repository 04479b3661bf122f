package app

import (
	"database/sql"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/auth"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/employee"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/rbac"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/recruitment"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/counter"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeclock"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeoff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	recruitmentRepo := recruitment.NewRepository(gormDB)
	timeclockRepo := timeclock.NewRepository(gormDB)
	timeoffRepo := timeoff.NewRepository(gormDB)

	// --- RBAC ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo, cfg.JWTSecret)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, cfg.Policy)
	recruitmentService := recruitment.NewService(db, recruitmentRepo, employeeService)
	timeclockService := timeclock.NewService(db, timeclockRepo)
	timeoffService := timeoff.NewService(db, timeoffRepo, outboxRepo, cfg.Policy.VacationEntitlementDays)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService)
	recruitmentHandler := recruitment.NewHandler(recruitmentService)
	timeclockHandler := timeclock.NewHandler(timeclockService)
	timeoffHandler := timeoff.NewHandler(timeoffService)

	authMW := middleware.AuthMiddleware(cfg.JWTSecret)
	idempotency := middleware.Idempotency(rdb)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		employee.RegisterRoutes(api, employeeHandler, authMW, enforcer)
		payroll.RegisterRoutes(api, payrollHandler, authMW, enforcer, idempotency)
		recruitment.RegisterRoutes(api, recruitmentHandler, authMW, enforcer)
		timeclock.RegisterRoutes(api, timeclockHandler, authMW, enforcer)
		timeoff.RegisterRoutes(api, timeoffHandler, authMW, enforcer)
	}

	return nil
}

// autoMigrate keeps the dev schema in sync. Production uses SQL migrations.
func autoMigrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&auth.User{},
		&employee.Employee{},
		&employee.VariableDiscount{},
		&payroll.PayslipDocument{},
		&recruitment.Candidate{},
		&timeclock.Entry{},
		&timeoff.TimeOffRequest{},
	); err != nil {
		return err
	}

	// The counter and outbox tables are touched with raw SQL, so gorm has no
	// model to migrate from.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			counter_type varchar(50) PRIMARY KEY,
			last_value   bigint NOT NULL DEFAULT 0,
			updated_at   timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id             uuid PRIMARY KEY,
			request_id     varchar(100),
			aggregate_type varchar(50) NOT NULL,
			aggregate_id   uuid NOT NULL,
			event_type     varchar(100) NOT NULL,
			topic          varchar(200) NOT NULL,
			payload        jsonb NOT NULL,
			status         varchar(20) NOT NULL DEFAULT 'pending',
			retry_count    int NOT NULL DEFAULT 0,
			error_message  varchar(500),
			next_retry_at  timestamptz,
			processed_at   timestamptz,
			created_at     timestamptz NOT NULL DEFAULT now(),
			updated_at     timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_status_retry
			ON outbox_events (status, next_retry_at)`,
	}
	for _, stmt := range statements {
		if err := gormDB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
