package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type WooOrderGormRepository struct {
	db *gorm.DB
}

func NewWooOrderGormRepository(db *gorm.DB) *WooOrderGormRepository {
	return &WooOrderGormRepository{db: db}
}

// 事前チェックなしで挿入し、一意制約違反をErrDuplicateOrderに変換する。
// check-then-actの競合窓をDB側で閉じる。
func (r *WooOrderGormRepository) Create(ctx context.Context, order *model.WooOrder) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return repo.ErrDuplicateOrder
	}
	return err
}

func (r *WooOrderGormRepository) FindByWooOrderID(ctx context.Context, wooOrderID int64) (model.WooOrder, bool, error) {
	var o model.WooOrder
	err := r.db.WithContext(ctx).
		Where("woo_order_id = ?", wooOrderID).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.WooOrder{}, false, nil
	}
	if err != nil {
		return model.WooOrder{}, false, err
	}
	return o, true, nil
}

// 23505 = unique_violation
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

type WooOrderItemGormRepository struct {
	db *gorm.DB
}

func NewWooOrderItemGormRepository(db *gorm.DB) *WooOrderItemGormRepository {
	return &WooOrderItemGormRepository{db: db}
}

func (r *WooOrderItemGormRepository) Create(ctx context.Context, item *model.WooOrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *WooOrderItemGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]model.WooOrderItem, error) {
	var items []model.WooOrderItem
	err := r.db.WithContext(ctx).
		Where("woo_order_id = ?", orderID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.WooOrderItem{}, err
	}
	return items, nil
}
