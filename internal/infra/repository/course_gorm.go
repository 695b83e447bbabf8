package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"gorm.io/gorm"
)

type CourseGormRepository struct {
	db *gorm.DB
}

func NewCourseGormRepository(db *gorm.DB) *CourseGormRepository {
	return &CourseGormRepository{db: db}
}

func (r *CourseGormRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *CourseGormRepository) FindByID(ctx context.Context, courseID string) (model.Course, error) {
	var c model.Course
	err := r.db.WithContext(ctx).Where("id = ?", courseID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Course{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Course{}, err
	}
	return c, nil
}

func (r *CourseGormRepository) ListActive(ctx context.Context) ([]model.Course, error) {
	var items []model.Course
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Course{}, err
	}
	return items, nil
}

func (r *CourseGormRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	var items []model.Course
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Course{}, err
	}
	return items, nil
}

func (r *CourseGormRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *CourseGormRepository) SetActive(ctx context.Context, courseID string, active bool) error {
	res := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ?", courseID).
		Update("is_active", active)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CourseGormRepository) Delete(ctx context.Context, courseID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", courseID).
		Delete(&model.Course{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
