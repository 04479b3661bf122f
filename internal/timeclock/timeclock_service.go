package timeclock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/calendar"
	timeclockerrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeclock/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Clock-ins after this time count as late.
const (
	lateHour   = 9
	lateMinute = 15
)

//go:generate mockgen -source=timeclock_service.go -destination=mock/timeclock_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (EntryResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (EntryResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]EntryResponse, error)
	GetSummary(ctx context.Context, employeeID string, query SummaryQuery) (SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeclock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeclock.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (EntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EntryResponse{}, timeclockerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := calendar.FromTime(now).Time()

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EntryResponse{}, err
	}
	if existing != nil {
		return EntryResponse{}, timeclockerrors.ErrAlreadyClockedIn
	}

	status := StatusPresent
	if now.Hour() > lateHour || (now.Hour() == lateHour && now.Minute() > lateMinute) {
		status = StatusLate
	}

	entry := &Entry{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		WorkDate:   today,
		ClockIn:    now,
		Status:     status,
		Notes:      req.Notes,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("clock in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return mapToResponse(*entry), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (EntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EntryResponse{}, timeclockerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := calendar.FromTime(now).Time()

	entry, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryResponse{}, timeclockerrors.ErrNoOpenEntry
		}
		return EntryResponse{}, err
	}
	if entry.ClockOut != nil {
		return EntryResponse{}, timeclockerrors.ErrAlreadyClockedOut
	}

	entry.ClockOut = &now
	if req.Notes != nil {
		entry.Notes = req.Notes
	}

	if err := qtx.Update(ctx, entry); err != nil {
		s.logger.Error("clock out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return EntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	s.logger.Info("clock out success", zap.String("employee_id", employeeID))
	return mapToResponse(*entry), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]EntryResponse, error) {
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, timeclockerrors.ErrInvalidEmployeeID
		}
	}

	entries, err := s.repo.FindAll(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]EntryResponse, len(entries))
	for i, e := range entries {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

// GetSummary aggregates worked hours over a closed date range. Entries
// without a clock-out contribute no hours and are reported separately.
func (s *service) GetSummary(ctx context.Context, employeeID string, query SummaryQuery) (SummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return SummaryResponse{}, timeclockerrors.ErrInvalidEmployeeID
	}

	from, err := calendar.Parse(query.From)
	if err != nil {
		return SummaryResponse{}, timeclockerrors.ErrInvalidDateFormat
	}
	to, err := calendar.Parse(query.To)
	if err != nil {
		return SummaryResponse{}, timeclockerrors.ErrInvalidDateFormat
	}
	if to.Before(from) {
		return SummaryResponse{}, timeclockerrors.ErrInvalidRange
	}

	entries, err := s.repo.FindRange(ctx, employeeID, from.Time(), to.Time())
	if err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		EmployeeID: employeeID,
		From:       from.String(),
		To:         to.String(),
	}

	total := decimal.Zero
	for _, e := range entries {
		resp.DaysWorked++
		if e.Status == StatusLate {
			resp.LateDays++
		}
		if e.ClockOut == nil {
			resp.OpenEntries++
			continue
		}
		worked := decimal.NewFromFloat(e.ClockOut.Sub(e.ClockIn).Hours())
		total = total.Add(worked)
	}
	resp.WorkedHours = total.Round(2).StringFixed(2)

	return resp, nil
}

func mapToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		WorkDate:   e.WorkDate.Format("2006-01-02"),
		ClockIn:    e.ClockIn.Format(time.RFC3339),
		Status:     e.Status,
		Notes:      e.Notes,
	}
	if e.ClockOut != nil {
		v := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
