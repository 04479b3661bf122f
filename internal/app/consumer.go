package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka/consumer"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer generates payslip documents from payslip-requested events.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

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
	defer sqlDB.Close()

	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	payrollService := payroll.NewService(sqlDB, payrollRepo, outboxRepo, cfg.Policy)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          events.PayrollPayslipRequestedTopic,
		GroupID:        "gestaorh-payslip",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayslipRequested(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
