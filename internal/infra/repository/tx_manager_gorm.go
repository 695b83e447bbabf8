package repository

import (
	"context"

	repo "courseapp/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	wooOrders     repo.WooOrderRepository
	wooOrderItems repo.WooOrderItemRepository
	users         repo.UserRepository
	skuMappings   repo.SkuMappingRepository
	enrollments   repo.EnrollmentRepository
}

func (r *txReposGorm) WooOrders() repo.WooOrderRepository         { return r.wooOrders }
func (r *txReposGorm) WooOrderItems() repo.WooOrderItemRepository { return r.wooOrderItems }
func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) SkuMappings() repo.SkuMappingRepository     { return r.skuMappings }
func (r *txReposGorm) Enrollments() repo.EnrollmentRepository     { return r.enrollments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			wooOrders:     NewWooOrderGormRepository(tx),
			wooOrderItems: NewWooOrderItemGormRepository(tx),
			users:         NewUserGormRepository(tx),
			skuMappings:   NewSkuMappingGormRepository(tx),
			enrollments:   NewEnrollmentGormRepository(tx),
		}
		return fn(r)
	})
}
