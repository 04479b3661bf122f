package timeoff_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/employee"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeoff"
	timeofferrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/timeoff/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTimeOffRepository struct {
	createFn               func(ctx context.Context, req *timeoff.TimeOffRequest) error
	findAllFn              func(ctx context.Context, employeeID string) ([]timeoff.TimeOffRequest, error)
	findByIDFn             func(ctx context.Context, id string) (*timeoff.TimeOffRequest, error)
	updateFn               func(ctx context.Context, req *timeoff.TimeOffRequest) error
	findApprovedVacationFn func(ctx context.Context, employeeID string) ([]timeoff.TimeOffRequest, error)
	findEmployeeFn         func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error)
	updateEmployeeStatusFn func(ctx context.Context, id, status string) error
}

func (f *fakeTimeOffRepository) WithTx(tx *sql.Tx) timeoff.Repository { return f }

func (f *fakeTimeOffRepository) Create(ctx context.Context, req *timeoff.TimeOffRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return nil
}

func (f *fakeTimeOffRepository) FindAll(ctx context.Context, employeeID string) ([]timeoff.TimeOffRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeTimeOffRepository) FindByID(ctx context.Context, id string) (*timeoff.TimeOffRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimeOffRepository) Update(ctx context.Context, req *timeoff.TimeOffRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, req)
	}
	return nil
}

func (f *fakeTimeOffRepository) FindApprovedVacation(ctx context.Context, employeeID string) ([]timeoff.TimeOffRequest, error) {
	if f.findApprovedVacationFn != nil {
		return f.findApprovedVacationFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeTimeOffRepository) FindEmployee(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
	if f.findEmployeeFn != nil {
		return f.findEmployeeFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimeOffRepository) UpdateEmployeeStatus(ctx context.Context, id, status string) error {
	if f.updateEmployeeStatusFn != nil {
		return f.updateEmployeeStatusFn(ctx, id, status)
	}
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type timeOffServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service timeoff.Service
	repo    *fakeTimeOffRepository
	outbox  *fakeOutboxRepository
}

func setupTimeOffServiceTest(t *testing.T) *timeOffServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTimeOffRepository{}
	outbox := &fakeOutboxRepository{}
	svc := timeoff.NewService(db, repo, outbox, 30)

	return &timeOffServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func activeEmployee() timeoff.EmployeeSnapshot {
	return timeoff.EmployeeSnapshot{
		ID:       uuid.New(),
		FullName: "Maria Souza",
		HireDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:   employee.StatusActive,
	}
}

func pendingRequest(employeeID uuid.UUID, reqType string) timeoff.TimeOffRequest {
	return timeoff.TimeOffRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Type:       reqType,
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		TotalDays:  10,
		Status:     timeoff.StatusPending,
	}
}

func TestTimeOffService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		var created *timeoff.TimeOffRequest
		deps.repo.createFn = func(ctx context.Context, req *timeoff.TimeOffRequest) error {
			created = req
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Submit(ctx, timeoff.SubmitTimeOffRequest{
			EmployeeID: empl.ID.String(),
			Type:       timeoff.TypeVacation,
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-10",
			Reason:     "annual leave",
		})

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusPending, resp.Status)
		assert.Equal(t, 10, resp.TotalDays)
		assert.NotNil(t, created)
		assert.Equal(t, empl.ID, created.EmployeeID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("inverted range", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, timeoff.SubmitTimeOffRequest{
			EmployeeID: uuid.New().String(),
			Type:       timeoff.TypeSick,
			StartDate:  "2026-09-10",
			EndDate:    "2026-09-01",
		})

		assert.ErrorIs(t, err, timeofferrors.ErrInvalidRange)
	})

	t.Run("bad date format", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, timeoff.SubmitTimeOffRequest{
			EmployeeID: uuid.New().String(),
			Type:       timeoff.TypeSick,
			StartDate:  "01/09/2026",
			EndDate:    "10/09/2026",
		})

		assert.ErrorIs(t, err, timeofferrors.ErrInvalidDateFormat)
	})

	t.Run("unknown type", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Submit(ctx, timeoff.SubmitTimeOffRequest{
			EmployeeID: uuid.New().String(),
			Type:       "sabbatical",
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-10",
		})

		assert.ErrorIs(t, err, timeofferrors.ErrInvalidType)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Submit(ctx, timeoff.SubmitTimeOffRequest{
			EmployeeID: uuid.New().String(),
			Type:       timeoff.TypeVacation,
			StartDate:  "2026-09-01",
			EndDate:    "2026-09-10",
		})

		assert.ErrorIs(t, err, timeofferrors.ErrUnknownEmployee)
	})
}

func TestTimeOffService_Approve(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("vacation puts employee on vacation", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		request := pendingRequest(empl.ID, timeoff.TypeVacation)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeoff.TimeOffRequest, error) {
			return &request, nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		var statusSet string
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, id, status string) error {
			statusSet = status
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Approve(ctx, actorID, request.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusApproved, resp.Status)
		assert.Equal(t, employee.StatusVacation, statusSet)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)

		// The status transition lands in the outbox within the same tx.
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.EmployeeStatusChangedTopic, deps.outbox.created[0].Topic)

		var event events.EmployeeStatusChangedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &event))
		assert.Equal(t, employee.StatusActive, event.FromStatus)
		assert.Equal(t, employee.StatusVacation, event.ToStatus)
	})

	t.Run("sick leave puts employee on leave", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		request := pendingRequest(empl.ID, timeoff.TypeSick)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeoff.TimeOffRequest, error) {
			return &request, nil
		}
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		var statusSet string
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, id, status string) error {
			statusSet = status
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.Approve(ctx, actorID, request.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.StatusLeave, statusSet)
	})

	t.Run("already processed", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		request := pendingRequest(empl.ID, timeoff.TypeVacation)
		request.Status = timeoff.StatusApproved

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeoff.TimeOffRequest, error) {
			return &request, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Approve(ctx, actorID, request.ID.String())

		assert.ErrorIs(t, err, timeofferrors.ErrAlreadyProcessed)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("request not found", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Approve(ctx, actorID, uuid.New().String())

		assert.ErrorIs(t, err, timeofferrors.ErrRequestNotFound)
	})
}

func TestTimeOffService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("no employee side effect", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		request := pendingRequest(empl.ID, timeoff.TypeVacation)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeoff.TimeOffRequest, error) {
			return &request, nil
		}

		statusTouched := false
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, id, status string) error {
			statusTouched = true
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Reject(ctx, uuid.New().String(), request.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusRejected, resp.Status)
		assert.Nil(t, resp.ApprovedBy)
		assert.False(t, statusTouched)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("double reject conflicts", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		request := pendingRequest(empl.ID, timeoff.TypeSick)
		request.Status = timeoff.StatusRejected

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*timeoff.TimeOffRequest, error) {
			return &request, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Reject(ctx, uuid.New().String(), request.ID.String())

		assert.ErrorIs(t, err, timeofferrors.ErrAlreadyProcessed)
	})
}

func TestTimeOffService_EndVacationEarly(t *testing.T) {
	ctx := context.Background()

	t.Run("returns employee to active", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		empl.Status = employee.StatusVacation

		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		var statusSet string
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, id, status string) error {
			statusSet = status
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.EndVacationEarly(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.StatusActive, resp.Status)
		assert.Equal(t, employee.StatusActive, statusSet)
		assert.Len(t, deps.outbox.created, 1)
	})

	t.Run("idempotent on active employee", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		statusTouched := false
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, id, status string) error {
			statusTouched = true
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.EndVacationEarly(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.StatusActive, resp.Status)
		assert.False(t, statusTouched)
		assert.Empty(t, deps.outbox.created)
	})
}

func TestTimeOffService_GrantVacation(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("born approved with side effect", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		var created *timeoff.TimeOffRequest
		deps.repo.createFn = func(ctx context.Context, req *timeoff.TimeOffRequest) error {
			created = req
			return nil
		}

		var statusSet string
		deps.repo.updateEmployeeStatusFn = func(ctx context.Context, id, status string) error {
			statusSet = status
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.GrantVacation(ctx, actorID, timeoff.GrantVacationRequest{
			EmployeeID: empl.ID.String(),
			Days:       15,
			StartDate:  "2026-10-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, timeoff.StatusApproved, resp.Status)
		assert.Equal(t, timeoff.TypeVacation, resp.Type)
		assert.Equal(t, "2026-10-01", resp.StartDate)
		assert.Equal(t, "2026-10-15", resp.EndDate)
		assert.Equal(t, 15, resp.TotalDays)
		assert.Equal(t, employee.StatusVacation, statusSet)
		assert.NotNil(t, created)
		assert.NotNil(t, created.ApprovedBy)
	})

	t.Run("days below one", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GrantVacation(ctx, actorID, timeoff.GrantVacationRequest{
			EmployeeID: uuid.New().String(),
			Days:       0,
		})

		assert.ErrorIs(t, err, timeofferrors.ErrInvalidDays)
	})
}

func TestTimeOffService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("on vacation includes return date", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		empl.Status = employee.StatusVacation

		today := time.Now().UTC()
		vacation := timeoff.TimeOffRequest{
			ID:         uuid.New(),
			EmployeeID: empl.ID,
			Type:       timeoff.TypeVacation,
			Status:     timeoff.StatusApproved,
			StartDate:  today.AddDate(0, 0, -2),
			EndDate:    today.AddDate(0, 0, 7),
			TotalDays:  10,
		}

		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}
		deps.repo.findApprovedVacationFn = func(ctx context.Context, employeeID string) ([]timeoff.TimeOffRequest, error) {
			return []timeoff.TimeOffRequest{vacation}, nil
		}

		resp, err := deps.service.GetBalance(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, 10, resp.TakenDays)
		assert.Equal(t, 20, resp.Balance)
		assert.NotNil(t, resp.ReturnDate)
		assert.NotNil(t, resp.DaysLeft)
		assert.Equal(t, 8, *resp.DaysLeft)
	})

	t.Run("active employee omits return date", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		empl := activeEmployee()
		deps.repo.findEmployeeFn = func(ctx context.Context, id string) (*timeoff.EmployeeSnapshot, error) {
			return &empl, nil
		}

		resp, err := deps.service.GetBalance(ctx, empl.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, 30, resp.Balance)
		assert.Nil(t, resp.ReturnDate)
		assert.Nil(t, resp.DaysLeft)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupTimeOffServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetBalance(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, timeofferrors.ErrInvalidEmployeeID)
	})
}
