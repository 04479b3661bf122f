package consumer

import (
	"context"
	"encoding/json"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayslipRequested renders and stores payslip documents requested
// through the outbox. Generation is idempotent, so redelivered messages are
// safe.
func ConsumePayslipRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payslip")
	log.Info("payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip consumer stopped")
				return
			}
			log.Error("fetch payslip message failed", zap.Error(err))
			continue
		}

		var event events.PayrollPayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// Poison message, commit and move on.
			log.Error("decode payslip event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := payrollService.GeneratePayslip(ctx, event.EmployeeID, event.Period); err != nil {
			log.Error("generate payslip failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("period", event.Period),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip message failed", zap.Error(err))
			continue
		}

		log.Info("payslip generated",
			zap.String("employee_id", event.EmployeeID),
			zap.String("period", event.Period),
		)
	}
}
