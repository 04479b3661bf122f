package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]EmployeeOption, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	EmailExists(ctx context.Context, email string, excludeID *string) (bool, error)
	Update(ctx context.Context, e *Employee) error
	UpdateStatus(ctx context.Context, id, status string) error
	ReplaceVariableDiscounts(ctx context.Context, employeeID string, discounts []VariableDiscount) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("VariableDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindOptions(ctx context.Context) ([]EmployeeOption, error) {
	var options []EmployeeOption
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Select("id::text AS id, full_name, status").
		Where("status <> ?", StatusTerminated).
		Order("full_name ASC").
		Scan(&options).Error
	return options, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("VariableDiscounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", email)
	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).
		Omit("VariableDiscounts").
		Save(e).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
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

func (r *repository) ReplaceVariableDiscounts(ctx context.Context, employeeID string, discounts []VariableDiscount) error {
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&VariableDiscount{}).Error; err != nil {
		return err
	}
	if len(discounts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&discounts).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
