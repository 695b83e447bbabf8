package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"gorm.io/gorm"
)

type SectionGormRepository struct {
	db *gorm.DB
}

func NewSectionGormRepository(db *gorm.DB) *SectionGormRepository {
	return &SectionGormRepository{db: db}
}

func (r *SectionGormRepository) Create(ctx context.Context, section *model.CourseSection) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *SectionGormRepository) FindByID(ctx context.Context, sectionID string) (model.CourseSection, error) {
	var s model.CourseSection
	err := r.db.WithContext(ctx).Where("id = ?", sectionID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CourseSection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CourseSection{}, err
	}
	return s, nil
}

func (r *SectionGormRepository) ListByCourseID(ctx context.Context, courseID string) ([]model.CourseSection, error) {
	var items []model.CourseSection
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index asc").
		Find(&items).Error
	if err != nil {
		return []model.CourseSection{}, err
	}
	return items, nil
}

func (r *SectionGormRepository) Update(ctx context.Context, section *model.CourseSection) error {
	return r.db.WithContext(ctx).Save(section).Error
}

// 並び替えは1トランザクションでまとめて更新
func (r *SectionGormRepository) Reorder(ctx context.Context, courseID string, orders []repo.SectionOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Model(&model.CourseSection{}).
				Where("id = ? AND course_id = ?", o.SectionID, courseID).
				Update("order_index", o.OrderIndex)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
		}
		return nil
	})
}

func (r *SectionGormRepository) Delete(ctx context.Context, sectionID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", sectionID).
		Delete(&model.CourseSection{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
