package app

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/middleware"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and mounts every module under
// /api/v1.
func BuildApp(router *gin.Engine, cfg config.Config) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
		logger,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5, logger)
	if err != nil {
		return err
	}

	if err := autoMigrate(gormDB); err != nil {
		return err
	}

	router.Use(middleware.RequestID())

	return registerModules(router, cfg, sqlDB, gormDB, rdb)
}
