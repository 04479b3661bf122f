package timeoff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/calendar"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/employee"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/contextutil"
	timeofferrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeoff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeoff_service.go -destination=mock/timeoff_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitTimeOffRequest) (TimeOffResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]TimeOffResponse, error)
	GetByID(ctx context.Context, id string) (TimeOffResponse, error)
	Approve(ctx context.Context, actorID, id string) (TimeOffResponse, error)
	Reject(ctx context.Context, actorID, id string) (TimeOffResponse, error)
	EndVacationEarly(ctx context.Context, employeeID string) (EndVacationResponse, error)
	GrantVacation(ctx context.Context, actorID string, req GrantVacationRequest) (TimeOffResponse, error)
	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	outbox          kafka.OutboxRepository
	entitlementDays int
	logger          *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	entitlementDays int,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timeoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeoff.service")
	}
	return &service{
		db:              db,
		repo:            repo,
		outbox:          outboxRepo,
		entitlementDays: entitlementDays,
		logger:          l,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitTimeOffRequest) (TimeOffResponse, error) {
	s.logger.Debug("submit time off requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
		zap.String("type", req.Type),
	)

	if !IsValidType(req.Type) {
		return TimeOffResponse{}, timeofferrors.ErrInvalidType
	}

	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("submit time off validation failed", zap.Error(err))
		return TimeOffResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit time off begin tx failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeOffResponse{}, timeofferrors.ErrUnknownEmployee
		}
		return TimeOffResponse{}, err
	}

	totalDays, err := calendar.DaysBetweenInclusive(startDate, endDate)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidRange
	}

	request := &TimeOffRequest{
		ID:            uuid.New(),
		EmployeeID:    empl.ID,
		Type:          req.Type,
		StartDate:     startDate.Time(),
		EndDate:       endDate.Time(),
		TotalDays:     totalDays,
		Reason:        req.Reason,
		AttachmentURL: req.AttachmentURL,
		Status:        StatusPending,
	}

	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("submit time off persist failed", zap.Error(err))
		return TimeOffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit time off commit failed", zap.Error(err))
		return TimeOffResponse{}, err
	}

	s.logger.Info("submit time off success",
		zap.String("timeoff_id", request.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*request), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]TimeOffResponse, error) {
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, timeofferrors.ErrInvalidEmployeeID
		}
	}

	requests, err := s.repo.FindAll(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimeOffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeOffResponse{}, timeofferrors.ErrRequestNotFound
		}
		return TimeOffResponse{}, err
	}
	return mapToResponse(*request), nil
}

// Approve moves a pending request to its terminal approved state. Mutating
// the employee status is part of the contract: vacation requests put the
// employee on vacation, every other type puts them on leave. Callers must
// not touch employee status themselves afterwards.
func (s *service) Approve(ctx context.Context, actorID, id string) (TimeOffResponse, error) {
	return s.resolve(ctx, actorID, id, StatusApproved)
}

// Reject moves a pending request to rejected. No employee side effect.
func (s *service) Reject(ctx context.Context, actorID, id string) (TimeOffResponse, error) {
	return s.resolve(ctx, actorID, id, StatusRejected)
}

func (s *service) resolve(ctx context.Context, actorID, id, targetStatus string) (TimeOffResponse, error) {
	s.logger.Debug("resolve time off requested",
		zap.String("timeoff_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidRequestID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve time off begin tx failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	request, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeOffResponse{}, timeofferrors.ErrRequestNotFound
		}
		return TimeOffResponse{}, err
	}
	if request.Status != StatusPending {
		s.logger.Warn("resolve time off on non-pending request",
			zap.String("timeoff_id", id),
			zap.String("status", request.Status),
		)
		return TimeOffResponse{}, timeofferrors.ErrAlreadyProcessed
	}

	request.Status = targetStatus
	if targetStatus == StatusApproved {
		now := time.Now().UTC()
		request.ApprovedBy = &actorUUID
		request.ApprovedAt = &now
	}

	if err := qtx.Update(ctx, request); err != nil {
		s.logger.Error("resolve time off persist failed", zap.String("timeoff_id", id), zap.Error(err))
		return TimeOffResponse{}, err
	}

	if targetStatus == StatusApproved {
		newStatus := employee.StatusLeave
		if request.Type == TypeVacation {
			newStatus = employee.StatusVacation
		}
		if err := s.applyEmployeeStatus(ctx, tx, qtx, request.EmployeeID.String(), newStatus); err != nil {
			return TimeOffResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve time off commit failed", zap.String("timeoff_id", id), zap.Error(err))
		return TimeOffResponse{}, err
	}

	s.logger.Info("resolve time off success",
		zap.String("timeoff_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*request), nil
}

// EndVacationEarly force-returns an employee to active regardless of any
// request's date range. Request history is left untouched; this is the
// escape hatch for early returns. Idempotent.
func (s *service) EndVacationEarly(ctx context.Context, employeeID string) (EndVacationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EndVacationResponse{}, timeofferrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EndVacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EndVacationResponse{}, timeofferrors.ErrUnknownEmployee
		}
		return EndVacationResponse{}, err
	}

	if empl.Status != employee.StatusActive {
		if err := s.applyEmployeeStatus(ctx, tx, qtx, employeeID, employee.StatusActive); err != nil {
			return EndVacationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EndVacationResponse{}, err
	}

	s.logger.Info("end vacation early success", zap.String("employee_id", employeeID))
	return EndVacationResponse{EmployeeID: employeeID, Status: employee.StatusActive}, nil
}

// GrantVacation is the HR-initiated shortcut around the request/approve
// flow: the request is born approved and the vacation side effect applies
// immediately.
func (s *service) GrantVacation(ctx context.Context, actorID string, req GrantVacationRequest) (TimeOffResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidEmployeeID
	}
	if req.Days < 1 {
		return TimeOffResponse{}, timeofferrors.ErrInvalidDays
	}

	startDate := calendar.Today().AddDays(1)
	if req.StartDate != "" {
		startDate, err = calendar.Parse(req.StartDate)
		if err != nil {
			return TimeOffResponse{}, timeofferrors.ErrInvalidDateFormat
		}
	}
	endDate := startDate.AddDays(req.Days - 1)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeOffResponse{}, timeofferrors.ErrUnknownEmployee
		}
		return TimeOffResponse{}, err
	}

	now := time.Now().UTC()
	request := &TimeOffRequest{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		Type:       TypeVacation,
		StartDate:  startDate.Time(),
		EndDate:    endDate.Time(),
		TotalDays:  req.Days,
		Status:     StatusApproved,
		ApprovedBy: &actorUUID,
		ApprovedAt: &now,
	}

	if err := qtx.Create(ctx, request); err != nil {
		s.logger.Error("grant vacation persist failed", zap.Error(err))
		return TimeOffResponse{}, err
	}

	if err := s.applyEmployeeStatus(ctx, tx, qtx, req.EmployeeID, employee.StatusVacation); err != nil {
		return TimeOffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TimeOffResponse{}, err
	}

	s.logger.Info("grant vacation success",
		zap.String("timeoff_id", request.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("days", req.Days),
	)
	return mapToResponse(*request), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, timeofferrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, timeofferrors.ErrUnknownEmployee
		}
		return BalanceResponse{}, err
	}

	approved, err := s.repo.FindApprovedVacation(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}

	today := calendar.Today()
	balance, err := ComputeVacationBalance(calendar.FromTime(empl.HireDate), approved, today, s.entitlementDays)
	if err != nil {
		return BalanceResponse{}, err
	}

	resp := BalanceResponse{
		EmployeeID:  employeeID,
		PeriodStart: balance.PeriodStart.String(),
		PeriodEnd:   balance.PeriodEnd.String(),
		TakenDays:   balance.TakenDays,
		Balance:     balance.Balance,
	}

	if empl.Status == employee.StatusVacation {
		if ret := LatestApprovedReturn(approved, today); ret != nil {
			returnDate := ret.ReturnDate.String()
			daysLeft := ret.DaysLeft
			resp.ReturnDate = &returnDate
			resp.DaysLeft = &daysLeft
		}
	}

	return resp, nil
}

// applyEmployeeStatus updates the employee row and records the transition in
// the outbox within the caller's transaction.
func (s *service) applyEmployeeStatus(ctx context.Context, tx *sql.Tx, qtx Repository, employeeID, newStatus string) error {
	empl, err := qtx.FindEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timeofferrors.ErrUnknownEmployee
		}
		return err
	}
	if empl.Status == newStatus {
		return nil
	}

	if err := qtx.UpdateEmployeeStatus(ctx, employeeID, newStatus); err != nil {
		s.logger.Error("update employee status failed",
			zap.String("employee_id", employeeID),
			zap.String("status", newStatus),
			zap.Error(err),
		)
		return err
	}

	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.EmployeeStatusChangedEvent{
		EventType:  "employee.status_changed",
		EmployeeID: employeeID,
		FromStatus: empl.Status,
		ToStatus:   newStatus,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   employeeID,
		EventType:     "employee.status_changed",
		Topic:         events.EmployeeStatusChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseRange(start, end string) (calendar.Date, calendar.Date, error) {
	startDate, err := calendar.Parse(start)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, timeofferrors.ErrInvalidDateFormat
	}
	endDate, err := calendar.Parse(end)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, timeofferrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return calendar.Date{}, calendar.Date{}, timeofferrors.ErrInvalidRange
	}
	return startDate, endDate, nil
}

func mapToResponse(r TimeOffRequest) TimeOffResponse {
	resp := TimeOffResponse{
		ID:            r.ID.String(),
		EmployeeID:    r.EmployeeID.String(),
		Type:          r.Type,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		TotalDays:     r.TotalDays,
		Reason:        r.Reason,
		AttachmentURL: r.AttachmentURL,
		Status:        r.Status,
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(requests []TimeOffRequest) []TimeOffResponse {
	resp := make([]TimeOffResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}
