package main

import (
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/app"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/apperror"

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

	if err := app.RunWorker(config.Load()); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
