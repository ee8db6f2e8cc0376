package customer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/shared/dbtx"
	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_repo.go -destination=mock/customer_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Customer) error
	FindAll(ctx context.Context) ([]Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	HasProjects(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := r.conn(ctx).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var c Customer
	if err := r.conn(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) HasProjects(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("projects").
		Where("customer_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, c *Customer) error {
	return r.conn(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
