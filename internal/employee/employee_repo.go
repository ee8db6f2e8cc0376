package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/domain"
	"github.com/jyhens/Layer2-Application/internal/shared/dbtx"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	Update(ctx context.Context, e *Employee) error
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
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.conn(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.conn(ctx).
		Select("id", "name").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.conn(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Employee{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Save(e).Error
}

// Delete removes the employee together with their assignments, leave
// requests and notifications.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)
	for _, table := range []string{"notifications", "leave_requests", "project_assignments"} {
		column := "employee_id"
		if table == "notifications" {
			column = "user_id"
		}
		if err := db.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id).Error; err != nil {
			return err
		}
	}

	res := db.Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
