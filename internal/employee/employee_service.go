package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/calendar"
	employeeerrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/employee/errors"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/contextutil"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	OptionsCacheKey = "employees:options"
	optionsCacheTTL = 5 * time.Minute

	defaultContractHours = "220"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Terminate(ctx context.Context, id string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("hire_date", req.HireDate),
	)

	hireDate, err := calendar.Parse(req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date", zap.String("hire_date", req.HireDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.EmailExists(ctx, req.Email, nil)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	}

	nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
	if err != nil {
		s.logger.Error("create employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	contractHours := decimal.RequireFromString(defaultContractHours)
	if req.ContractHours != nil {
		contractHours = clampNonNegative(*req.ContractHours)
	}

	empl := &Employee{
		ID:                 uuid.New(),
		RegistrationNumber: fmt.Sprintf("EMP-%06d", nextVal),
		FullName:           req.FullName,
		Email:              req.Email,
		Position:           req.Position,
		HireDate:           hireDate.Time(),
		Status:             StatusActive,
		ContractHours:      contractHours,
		BaseSalary:         clampNonNegative(req.BaseSalary),
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := s.enqueueCreatedEvent(ctx, tx, empl, rid); err != nil {
		s.logger.Error("create employee outbox enqueue failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("registration_number", empl.RegistrationNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(employees), nil
}

// GetOptions serves the employee picker. Results are cached in redis and a
// singleflight group collapses concurrent cache fills after invalidation.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var options []EmployeeOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (any, error) {
		options, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	taken, err := qtx.EmailExists(ctx, req.Email, &id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Position = req.Position
	empl.ContractHours = clampNonNegative(req.ContractHours)
	empl.BaseSalary = clampNonNegative(req.BaseSalary)
	empl.FamilySalaryAmount = clampNonNegative(req.FamilySalaryAmount)
	empl.OvertimeAmount = clampNonNegative(req.OvertimeAmount)
	empl.VacationAmount = clampNonNegative(req.VacationAmount)
	empl.VacationThirdAmount = clampNonNegative(req.VacationThirdAmount)
	empl.FixedDiscounts = clampNonNegative(req.FixedDiscounts)
	empl.HasInsalubrity = req.HasInsalubrity
	empl.HasNightShift = req.HasNightShift
	if !req.HasInsalubrity {
		empl.InsalubrityAmount = decimal.Zero
	}
	if !req.HasNightShift {
		empl.NightShiftAmount = decimal.Zero
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	discounts := make([]VariableDiscount, 0, len(req.VariableDiscounts))
	for i, d := range req.VariableDiscounts {
		discounts = append(discounts, VariableDiscount{
			ID:          uuid.New(),
			EmployeeID:  empl.ID,
			Description: d.Description,
			Amount:      clampNonNegative(d.Amount),
			Position:    i,
		})
	}
	if err := qtx.ReplaceVariableDiscounts(ctx, id, discounts); err != nil {
		s.logger.Error("update employee discounts persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	empl.VariableDiscounts = discounts
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Terminate is a soft state change: the record survives for payroll history.
func (s *service) Terminate(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	if empl.Status == StatusTerminated {
		return EmployeeResponse{}, employeeerrors.ErrAlreadyTerminated
	}

	fromStatus := empl.Status
	if err := qtx.UpdateStatus(ctx, id, StatusTerminated); err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.enqueueStatusChangedEvent(ctx, tx, id, fromStatus, StatusTerminated); err != nil {
		s.logger.Error("terminate employee outbox enqueue failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	empl.Status = StatusTerminated
	s.logger.Info("terminate employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.ReplaceVariableDiscounts(ctx, id, nil); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, empl *Employee, rid string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:          "employee.created",
		EmployeeID:         empl.ID.String(),
		RegistrationNumber: empl.RegistrationNumber,
		OccurredAt:         time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     "employee.created",
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueStatusChangedEvent(ctx context.Context, tx *sql.Tx, employeeID, from, to string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.EmployeeStatusChangedEvent{
		EventType:  "employee.status_changed",
		EmployeeID: employeeID,
		FromStatus: from,
		ToStatus:   to,
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

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed", zap.Error(err))
	}
}

// clampNonNegative guards against negative monetary input reaching storage.
// The UI rejects it first; this is the engine-side floor.
func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func mapToResponse(e Employee) EmployeeResponse {
	discounts := make([]VariableDiscountResponse, len(e.VariableDiscounts))
	for i, d := range e.VariableDiscounts {
		discounts[i] = VariableDiscountResponse{
			Description: d.Description,
			Amount:      d.Amount,
		}
	}

	return EmployeeResponse{
		ID:                  e.ID.String(),
		RegistrationNumber:  e.RegistrationNumber,
		FullName:            e.FullName,
		Email:               e.Email,
		Position:            e.Position,
		HireDate:            e.HireDate.Format("2006-01-02"),
		Status:              e.Status,
		ContractHours:       e.ContractHours,
		BaseSalary:          e.BaseSalary,
		FamilySalaryAmount:  e.FamilySalaryAmount,
		InsalubrityAmount:   e.InsalubrityAmount,
		NightShiftAmount:    e.NightShiftAmount,
		OvertimeAmount:      e.OvertimeAmount,
		VacationAmount:      e.VacationAmount,
		VacationThirdAmount: e.VacationThirdAmount,
		FixedDiscounts:      e.FixedDiscounts,
		HasInsalubrity:      e.HasInsalubrity,
		HasNightShift:       e.HasNightShift,
		VariableDiscounts:   discounts,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp
}
