package payroll

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindPayrollEmployee(ctx context.Context, id string) (*PayrollEmployee, error)
	ListActiveEmployees(ctx context.Context) ([]PayrollEmployee, error)
	ListVariableDiscounts(ctx context.Context, employeeID string) ([]LineItem, error)
	ResetVariableFields(ctx context.Context, employeeID string) error
	ClearVariableDiscounts(ctx context.Context, employeeID string) error
	SavePayslipDocument(ctx context.Context, doc *PayslipDocument) error
	FindPayslipDocument(ctx context.Context, employeeID, period string) (*PayslipDocument, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindPayrollEmployee(ctx context.Context, id string) (*PayrollEmployee, error) {
	var emp PayrollEmployee
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) ListActiveEmployees(ctx context.Context) ([]PayrollEmployee, error) {
	var employees []PayrollEmployee
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Where("deleted_at IS NULL").
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) ListVariableDiscounts(ctx context.Context, employeeID string) ([]LineItem, error) {
	var items []LineItem
	err := r.db.WithContext(ctx).
		Table("variable_discounts").
		Select("description, amount").
		Where("employee_id = ?", employeeID).
		Order("position ASC").
		Scan(&items).Error
	return items, err
}

// ResetVariableFields zeroes every variable payroll input for one employee.
// Base salary and fixed discounts are deliberately untouched.
func (r *repository) ResetVariableFields(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Updates(map[string]any{
			"family_salary_amount":  0,
			"night_shift_amount":    0,
			"overtime_amount":       0,
			"vacation_amount":       0,
			"vacation_third_amount": 0,
		}).Error
}

func (r *repository) ClearVariableDiscounts(ctx context.Context, employeeID string) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM variable_discounts WHERE employee_id = ?", employeeID).Error
}

func (r *repository) SavePayslipDocument(ctx context.Context, doc *PayslipDocument) error {
	db := r.db.WithContext(ctx)
	if err := db.
		Where("employee_id = ? AND period = ?", doc.EmployeeID, doc.Period).
		Delete(&PayslipDocument{}).Error; err != nil {
		return err
	}
	return db.Create(doc).Error
}

func (r *repository) FindPayslipDocument(ctx context.Context, employeeID, period string) (*PayslipDocument, error) {
	var doc PayslipDocument
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("period = ?", period).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
