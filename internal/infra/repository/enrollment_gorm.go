package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentGormRepository struct {
	db *gorm.DB
}

func NewEnrollmentGormRepository(db *gorm.DB) *EnrollmentGormRepository {
	return &EnrollmentGormRepository{db: db}
}

// (user_id, course_id) のunique indexに対するON CONFLICT DO UPDATE。
// 同じ組で呼び直しても行は1つのまま。
func (r *EnrollmentGormRepository) Upsert(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status",
				"woo_order_id",
				"access_granted_at",
				"access_until",
				"updated_at",
			}),
		}).
		Create(enrollment).Error
}

func (r *EnrollmentGormRepository) FindByUserAndCourse(ctx context.Context, userID string, courseID string) (model.Enrollment, bool, error) {
	var e model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Enrollment{}, false, nil
	}
	if err != nil {
		return model.Enrollment{}, false, err
	}
	return e, true, nil
}

func (r *EnrollmentGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Enrollment, error) {
	var items []model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("access_granted_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Enrollment{}, err
	}
	return items, nil
}

func (r *EnrollmentGormRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Enrollment{}).Error
}
