package timeoff

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeoff_repo.go -destination=mock/timeoff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *TimeOffRequest) error
	FindAll(ctx context.Context, employeeID string) ([]TimeOffRequest, error)
	FindByID(ctx context.Context, id string) (*TimeOffRequest, error)
	Update(ctx context.Context, req *TimeOffRequest) error
	FindApprovedVacation(ctx context.Context, employeeID string) ([]TimeOffRequest, error)
	FindEmployee(ctx context.Context, id string) (*EmployeeSnapshot, error)
	UpdateEmployeeStatus(ctx context.Context, id, status string) error
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

func (r *repository) Create(ctx context.Context, req *TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAll(ctx context.Context, employeeID string) ([]TimeOffRequest, error) {
	db := r.db.WithContext(ctx).Order("start_date DESC")
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}

	var requests []TimeOffRequest
	err := db.Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TimeOffRequest, error) {
	var req TimeOffRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) Update(ctx context.Context, req *TimeOffRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *repository) FindApprovedVacation(ctx context.Context, employeeID string) ([]TimeOffRequest, error) {
	var requests []TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("type = ?", TypeVacation).
		Where("status = ?", StatusApproved).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindEmployee(ctx context.Context, id string) (*EmployeeSnapshot, error) {
	var snap EmployeeSnapshot
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&snap, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *repository) UpdateEmployeeStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&EmployeeSnapshot{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
