package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/config"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	payrollerrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll/errors"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetPayslip(ctx context.Context, employeeID string, overtimeHours *string) (PayslipLine, error)
	RequestPayslip(ctx context.Context, actorID, employeeID string, req RequestPayslipRequest) (RequestPayslipResponse, error)
	GeneratePayslip(ctx context.Context, employeeID, period string) error
	DownloadPayslip(ctx context.Context, employeeID, period string) (*PayslipDocument, error)
	CloseMonth(ctx context.Context, actorID string) (CloseMonthResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	policy config.PolicyConfig
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	policy config.PolicyConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		policy: policy,
		logger: l,
	}
}

// GetPayslip computes a payslip on the fly from the employee's current
// field values. Nothing is persisted.
func (s *service) GetPayslip(ctx context.Context, employeeID string, overtimeHours *string) (PayslipLine, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PayslipLine{}, payrollerrors.ErrInvalidEmployeeID
	}

	var hours *decimal.Decimal
	if overtimeHours != nil && *overtimeHours != "" {
		parsed, err := decimal.NewFromString(*overtimeHours)
		if err != nil || parsed.IsNegative() {
			return PayslipLine{}, payrollerrors.ErrInvalidOvertimeHours
		}
		hours = &parsed
	}

	emp, err := s.repo.FindPayrollEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipLine{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayslipLine{}, err
	}

	discounts, err := s.repo.ListVariableDiscounts(ctx, employeeID)
	if err != nil {
		return PayslipLine{}, err
	}

	return ComputePayslip(*emp, discounts, s.policy, hours), nil
}

// RequestPayslip enqueues asynchronous payslip generation through the
// outbox. The consumer renders and stores the document.
func (s *service) RequestPayslip(ctx context.Context, actorID, employeeID string, req RequestPayslipRequest) (RequestPayslipResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return RequestPayslipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(req.Period); err != nil {
		return RequestPayslipResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RequestPayslipResponse{}, err
	}
	defer tx.Rollback()

	if _, err := s.repo.FindPayrollEmployee(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestPayslipResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return RequestPayslipResponse{}, err
	}

	payload, err := json.Marshal(events.PayrollPayslipRequestedEvent{
		EventType:   "payroll.payslip_requested",
		EmployeeID:  employeeID,
		Period:      req.Period,
		RequestedBy: actorID,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return RequestPayslipResponse{}, err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   employeeID,
		EventType:     "payroll.payslip_requested",
		Topic:         events.PayrollPayslipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("request payslip enqueue failed", zap.Error(err))
		return RequestPayslipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RequestPayslipResponse{}, err
	}

	s.logger.Info("request payslip enqueued",
		zap.String("employee_id", employeeID),
		zap.String("period", req.Period),
	)

	return RequestPayslipResponse{
		EmployeeID: employeeID,
		Period:     req.Period,
		Status:     "queued",
	}, nil
}

// GeneratePayslip renders the payslip PDF and stores it, replacing any
// previous document for the same employee and period. Safe to redeliver.
func (s *service) GeneratePayslip(ctx context.Context, employeeID, period string) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return payrollerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(period); err != nil {
		return err
	}

	emp, err := s.repo.FindPayrollEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrEmployeeNotFound
		}
		return err
	}

	discounts, err := s.repo.ListVariableDiscounts(ctx, employeeID)
	if err != nil {
		return err
	}

	line := ComputePayslip(*emp, discounts, s.policy, nil)

	content, err := renderPayslipPDF(line, period)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	doc := &PayslipDocument{
		ID:          uuid.New(),
		EmployeeID:  emp.ID,
		Period:      period,
		Content:     content,
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.repo.SavePayslipDocument(ctx, doc); err != nil {
		s.logger.Error("save payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return err
	}

	s.logger.Info("payslip generated",
		zap.String("employee_id", employeeID),
		zap.String("period", period),
		zap.Int("bytes", len(content)),
	)
	return nil
}

func (s *service) DownloadPayslip(ctx context.Context, employeeID, period string) (*PayslipDocument, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	doc, err := s.repo.FindPayslipDocument(ctx, employeeID, period)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayslipNotFound
		}
		return nil, err
	}
	return doc, nil
}

// CloseMonth resets the variable payroll inputs of every active employee.
// Each employee runs in its own transaction: one bad row never aborts the
// batch. Running twice in a row is harmless, the second pass rewrites the
// same zeroes.
func (s *service) CloseMonth(ctx context.Context, actorID string) (CloseMonthResponse, error) {
	s.logger.Info("close month started", zap.String("actor_id", actorID))

	employees, err := s.repo.ListActiveEmployees(ctx)
	if err != nil {
		s.logger.Error("close month list employees failed", zap.Error(err))
		return CloseMonthResponse{}, err
	}

	resp := CloseMonthResponse{Failed: []CloseFailure{}}
	for _, emp := range employees {
		if err := s.closeEmployee(ctx, emp.ID.String()); err != nil {
			s.logger.Warn("close month employee failed",
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
			resp.Failed = append(resp.Failed, CloseFailure{
				EmployeeID: emp.ID.String(),
				Reason:     err.Error(),
			})
			continue
		}
		resp.UpdatedCount++
	}

	if err := s.recordMonthClosed(ctx, actorID, resp); err != nil {
		// The reset already happened; losing the event is tolerable.
		s.logger.Error("close month event enqueue failed", zap.Error(err))
	}

	s.logger.Info("close month finished",
		zap.Int("updated", resp.UpdatedCount),
		zap.Int("failed", len(resp.Failed)),
	)
	return resp, nil
}

func (s *service) closeEmployee(ctx context.Context, employeeID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ResetVariableFields(ctx, employeeID); err != nil {
		return err
	}
	if err := qtx.ClearVariableDiscounts(ctx, employeeID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) recordMonthClosed(ctx context.Context, actorID string, resp CloseMonthResponse) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.PayrollMonthClosedEvent{
		EventType:    "payroll.month_closed",
		UpdatedCount: resp.UpdatedCount,
		FailedCount:  len(resp.Failed),
		ClosedBy:     actorID,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   uuid.New().String(),
		EventType:     "payroll.month_closed",
		Topic:         events.PayrollMonthClosedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func validatePeriod(period string) error {
	if _, err := time.Parse("2006-01", period); err != nil {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}
