package repository

import (
	"context"

	"courseapp/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID string) (model.Comment, error)
	//コース＋セクション単位で新しい順
	ListBySection(ctx context.Context, courseID string, sectionID string) ([]model.Comment, error)
	//親コメントへの返信（1階層）
	ListReplies(ctx context.Context, parentCommentID string) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, commentID string) error
}
