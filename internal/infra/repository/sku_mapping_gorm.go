package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"gorm.io/gorm"
)

type SkuMappingGormRepository struct {
	db *gorm.DB
}

func NewSkuMappingGormRepository(db *gorm.DB) *SkuMappingGormRepository {
	return &SkuMappingGormRepository{db: db}
}

func (r *SkuMappingGormRepository) Create(ctx context.Context, mapping *model.SkuMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *SkuMappingGormRepository) FindByID(ctx context.Context, mappingID string) (model.SkuMapping, error) {
	var m model.SkuMapping
	err := r.db.WithContext(ctx).Where("id = ?", mappingID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SkuMapping{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SkuMapping{}, err
	}
	return m, nil
}

// 取り込みで使う検索。無効行は「無いのと同じ」扱い。
func (r *SkuMappingGormRepository) FindActiveBySku(ctx context.Context, sku string) (model.SkuMapping, bool, error) {
	var m model.SkuMapping
	err := r.db.WithContext(ctx).
		Where("sku = ? AND is_active = ?", sku, true).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SkuMapping{}, false, nil
	}
	if err != nil {
		return model.SkuMapping{}, false, err
	}
	return m, true, nil
}

func (r *SkuMappingGormRepository) List(ctx context.Context) ([]model.SkuMapping, error) {
	var items []model.SkuMapping
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.SkuMapping{}, err
	}
	return items, nil
}

func (r *SkuMappingGormRepository) Update(ctx context.Context, mapping *model.SkuMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

func (r *SkuMappingGormRepository) Delete(ctx context.Context, mappingID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", mappingID).
		Delete(&model.SkuMapping{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
