package repository

import (
	"context"

	"courseapp/internal/domain/model"
)

type EnrollmentRepository interface {
	// (user_id, course_id) キーのupsert。既存行があれば status / woo_order_id /
	// access_granted_at を更新し、重複行は作らない。
	Upsert(ctx context.Context, enrollment *model.Enrollment) error
	FindByUserAndCourse(ctx context.Context, userID string, courseID string) (model.Enrollment, bool, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Enrollment, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
