package repository

import (
	"context"

	"courseapp/internal/domain/model"
)

type SectionOrder struct {
	SectionID  string
	OrderIndex int
}

type SectionRepository interface {
	Create(ctx context.Context, section *model.CourseSection) error
	FindByID(ctx context.Context, sectionID string) (model.CourseSection, error)
	//order_index昇順
	ListByCourseID(ctx context.Context, courseID string) ([]model.CourseSection, error)
	Update(ctx context.Context, section *model.CourseSection) error
	//並び替え（まとめて更新）
	Reorder(ctx context.Context, courseID string, orders []SectionOrder) error
	Delete(ctx context.Context, sectionID string) error
}
