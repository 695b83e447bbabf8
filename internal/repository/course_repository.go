package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
)

// 対象が見つかりませんを統一
var ErrNotFound = errors.New("not found")

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, courseID string) (model.Course, error)
	//公開中コースのみ
	ListActive(ctx context.Context) ([]model.Course, error)
	//管理画面用（非公開含む）
	ListAll(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	//is_activeの切り替え
	SetActive(ctx context.Context, courseID string, active bool) error
	Delete(ctx context.Context, courseID string) error
}
