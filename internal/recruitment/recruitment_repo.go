package recruitment

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=recruitment_repo.go -destination=mock/recruitment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Candidate) error
	FindAll(ctx context.Context, stage string) ([]Candidate, error)
	FindByID(ctx context.Context, id string) (*Candidate, error)
	EmailExists(ctx context.Context, email string, excludeID *string) (bool, error)
	Update(ctx context.Context, c *Candidate) error
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

func (r *repository) Create(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, stage string) ([]Candidate, error) {
	db := r.db.WithContext(ctx).Order("created_at ASC")
	if stage != "" {
		db = db.Where("stage = ?", stage)
	}

	var candidates []Candidate
	err := db.Find(&candidates).Error
	return candidates, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Candidate, error) {
	var c Candidate
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).Model(&Candidate{}).Where("email = ?", email)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Candidate{}, "id = ?", id).Error
}
