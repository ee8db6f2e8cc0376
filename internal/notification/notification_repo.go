package notification

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jyhens/Layer2-Application/internal/shared/dbtx"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit int) ([]Notification, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Notification, error)
	MarkRead(ctx context.Context, ids []uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.conn(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit int) ([]Notification, error) {
	q := r.conn(ctx).Where("user_id = ?", userID)
	if onlyUnread {
		q = q.Where("is_read = ?", false)
	}

	var items []Notification
	err := q.
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Notification, error) {
	var items []Notification
	if len(ids) == 0 {
		return items, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *repository) MarkRead(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.conn(ctx).
		Model(&Notification{}).
		Where("id IN ?", ids).
		Update("is_read", true).Error
}
