package repository

import (
	"context"
	"errors"
	"time"

	"courseapp/internal/domain/model"

	"gorm.io/gorm"
)

type PasswordResetGormRepository struct {
	db *gorm.DB
}

func NewPasswordResetGormRepository(db *gorm.DB) *PasswordResetGormRepository {
	return &PasswordResetGormRepository{db: db}
}

func (r *PasswordResetGormRepository) Create(ctx context.Context, reset *model.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *PasswordResetGormRepository) FindByHash(ctx context.Context, tokenHash string) (model.PasswordReset, bool, error) {
	var pr model.PasswordReset
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&pr).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PasswordReset{}, false, nil
	}
	if err != nil {
		return model.PasswordReset{}, false, err
	}
	return pr, true, nil
}

func (r *PasswordResetGormRepository) MarkUsed(ctx context.Context, resetID string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.PasswordReset{}).
		Where("id = ? AND used_at IS NULL", resetID).
		Update("used_at", now)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PasswordResetGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.PasswordReset{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
