package main

import (
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/app"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/bootstrap"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg := config.Load()

	r := gin.Default()
	if err := app.BuildApp(r, cfg); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(r, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
}
