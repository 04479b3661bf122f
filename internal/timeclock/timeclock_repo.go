package timeclock

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeclock_repo.go -destination=mock/timeclock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entry) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Entry, error)
	FindAll(ctx context.Context, employeeID string) ([]Entry, error)
	FindRange(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
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

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context, employeeID string) ([]Entry, error) {
	db := r.db.WithContext(ctx).Order("work_date DESC, clock_in DESC")
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}

	var entries []Entry
	err := db.Find(&entries).Error
	return entries, err
}

func (r *repository) FindRange(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("work_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Save(e).Error
}
