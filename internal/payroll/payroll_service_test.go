package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/events"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/messaging/kafka"
	"github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll"
	payrollerrors "github.com/z12guilherme/gestaorecursoshumanos-sub000/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	findPayrollEmployeeFn   func(ctx context.Context, id string) (*payroll.PayrollEmployee, error)
	listActiveEmployeesFn   func(ctx context.Context) ([]payroll.PayrollEmployee, error)
	listVariableDiscountsFn func(ctx context.Context, employeeID string) ([]payroll.LineItem, error)
	resetVariableFieldsFn   func(ctx context.Context, employeeID string) error
	clearVariableDiscounts  func(ctx context.Context, employeeID string) error
	savePayslipDocumentFn   func(ctx context.Context, doc *payroll.PayslipDocument) error
	findPayslipDocumentFn   func(ctx context.Context, employeeID, period string) (*payroll.PayslipDocument, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	return f
}

func (f *fakePayrollRepository) FindPayrollEmployee(ctx context.Context, id string) (*payroll.PayrollEmployee, error) {
	if f.findPayrollEmployeeFn != nil {
		return f.findPayrollEmployeeFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) ListActiveEmployees(ctx context.Context) ([]payroll.PayrollEmployee, error) {
	if f.listActiveEmployeesFn != nil {
		return f.listActiveEmployeesFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) ListVariableDiscounts(ctx context.Context, employeeID string) ([]payroll.LineItem, error) {
	if f.listVariableDiscountsFn != nil {
		return f.listVariableDiscountsFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) ResetVariableFields(ctx context.Context, employeeID string) error {
	if f.resetVariableFieldsFn != nil {
		return f.resetVariableFieldsFn(ctx, employeeID)
	}
	return nil
}

func (f *fakePayrollRepository) ClearVariableDiscounts(ctx context.Context, employeeID string) error {
	if f.clearVariableDiscounts != nil {
		return f.clearVariableDiscounts(ctx, employeeID)
	}
	return nil
}

func (f *fakePayrollRepository) SavePayslipDocument(ctx context.Context, doc *payroll.PayslipDocument) error {
	if f.savePayslipDocumentFn != nil {
		return f.savePayslipDocumentFn(ctx, doc)
	}
	return nil
}

func (f *fakePayrollRepository) FindPayslipDocument(ctx context.Context, employeeID, period string) (*payroll.PayslipDocument, error) {
	if f.findPayslipDocumentFn != nil {
		return f.findPayslipDocumentFn(ctx, employeeID, period)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeOutboxRepository struct {
	created  []kafka.OutboxEvent
	createfn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createfn != nil {
		if err := f.createfn(ctx, event); err != nil {
			return err
		}
	}
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

type payrollServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.Service
	repo    *fakePayrollRepository
	outbox  *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payroll.NewService(db, repo, outbox, testPolicy())

	return &payrollServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func TestPayrollService_GetPayslip(t *testing.T) {
	ctx := context.Background()

	t.Run("success with overtime hours", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		emp := baseEmployee()
		deps.repo.findPayrollEmployeeFn = func(ctx context.Context, id string) (*payroll.PayrollEmployee, error) {
			return &emp, nil
		}

		hours := "10"
		resp, err := deps.service.GetPayslip(ctx, emp.ID.String(), &hours)

		assert.NoError(t, err)
		assert.Equal(t, "3225.00", resp.TotalEarnings.StringFixed(2))
	})

	t.Run("invalid overtime hours", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		for _, bad := range []string{"abc", "-1"} {
			v := bad
			_, err := deps.service.GetPayslip(ctx, uuid.New().String(), &v)
			assert.ErrorIs(t, err, payrollerrors.ErrInvalidOvertimeHours)
		}
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetPayslip(ctx, "not-a-uuid", nil)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetPayslip(ctx, uuid.New().String(), nil)
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
	})
}

func TestPayrollService_RequestPayslip(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("enqueues outbox event", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		emp := baseEmployee()
		deps.repo.findPayrollEmployeeFn = func(ctx context.Context, id string) (*payroll.PayrollEmployee, error) {
			return &emp, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.RequestPayslip(ctx, actorID, emp.ID.String(), payroll.RequestPayslipRequest{Period: "2026-08"})

		assert.NoError(t, err)
		assert.Equal(t, "queued", resp.Status)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.PayrollPayslipRequestedTopic, deps.outbox.created[0].Topic)

		var event events.PayrollPayslipRequestedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.created[0].Payload, &event))
		assert.Equal(t, "2026-08", event.Period)
		assert.Equal(t, actorID, event.RequestedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid period", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.RequestPayslip(ctx, actorID, uuid.New().String(), payroll.RequestPayslipRequest{Period: "08/2026"})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}

func TestPayrollService_GeneratePayslip(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := baseEmployee()
	emp.HasInsalubrity = true
	deps.repo.findPayrollEmployeeFn = func(ctx context.Context, id string) (*payroll.PayrollEmployee, error) {
		return &emp, nil
	}

	var saved *payroll.PayslipDocument
	deps.repo.savePayslipDocumentFn = func(ctx context.Context, doc *payroll.PayslipDocument) error {
		saved = doc
		return nil
	}

	err := deps.service.GeneratePayslip(ctx, emp.ID.String(), "2026-08")

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "2026-08", saved.Period)
	assert.Equal(t, emp.ID, saved.EmployeeID)
	assert.True(t, len(saved.Content) > 0)
	assert.Equal(t, "%PDF", string(saved.Content[:4]))
}

func TestPayrollService_DownloadPayslip_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.DownloadPayslip(ctx, uuid.New().String(), "2026-08")
	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)
}

func TestPayrollService_CloseMonth(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	activeEmployees := func(n int) []payroll.PayrollEmployee {
		employees := make([]payroll.PayrollEmployee, n)
		for i := range employees {
			employees[i] = payroll.PayrollEmployee{
				ID:            uuid.New(),
				Status:        "active",
				ContractHours: decimal.NewFromInt(220),
			}
		}
		return employees
	}

	t.Run("resets every active employee", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		employees := activeEmployees(3)
		deps.repo.listActiveEmployeesFn = func(ctx context.Context) ([]payroll.PayrollEmployee, error) {
			return employees, nil
		}

		var resetIDs []string
		deps.repo.resetVariableFieldsFn = func(ctx context.Context, employeeID string) error {
			resetIDs = append(resetIDs, employeeID)
			return nil
		}

		for range employees {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}

		resp, err := deps.service.CloseMonth(ctx, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.UpdatedCount)
		assert.Empty(t, resp.Failed)
		assert.Len(t, resetIDs, 3)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, events.PayrollMonthClosedTopic, deps.outbox.created[0].Topic)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("one failure never aborts the batch", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		employees := activeEmployees(3)
		broken := employees[1].ID.String()
		deps.repo.listActiveEmployeesFn = func(ctx context.Context) ([]payroll.PayrollEmployee, error) {
			return employees, nil
		}
		deps.repo.resetVariableFieldsFn = func(ctx context.Context, employeeID string) error {
			if employeeID == broken {
				return errors.New("deadlock detected")
			}
			return nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.CloseMonth(ctx, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.UpdatedCount)
		assert.Len(t, resp.Failed, 1)
		assert.Equal(t, broken, resp.Failed[0].EmployeeID)
		assert.Contains(t, resp.Failed[0].Reason, "deadlock")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second run rewrites the same zeroes", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		employees := activeEmployees(2)
		deps.repo.listActiveEmployeesFn = func(ctx context.Context) ([]payroll.PayrollEmployee, error) {
			return employees, nil
		}

		for i := 0; i < 2*len(employees); i++ {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}

		first, err := deps.service.CloseMonth(ctx, actorID)
		assert.NoError(t, err)

		second, err := deps.service.CloseMonth(ctx, actorID)
		assert.NoError(t, err)

		assert.Equal(t, first.UpdatedCount, second.UpdatedCount)
		assert.Empty(t, second.Failed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no active employees", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.CloseMonth(ctx, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.UpdatedCount)
		assert.Empty(t, resp.Failed)
	})
}
