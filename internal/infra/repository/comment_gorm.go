package repository

import (
	"context"
	"errors"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"gorm.io/gorm"
)

type CommentGormRepository struct {
	db *gorm.DB
}

func NewCommentGormRepository(db *gorm.DB) *CommentGormRepository {
	return &CommentGormRepository{db: db}
}

func (r *CommentGormRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentGormRepository) FindByID(ctx context.Context, commentID string) (model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Comment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

// トップレベルのコメントだけ（返信はListRepliesで取る）
func (r *CommentGormRepository) ListBySection(ctx context.Context, courseID string, sectionID string) ([]model.Comment, error) {
	var items []model.Comment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND section_id = ? AND parent_comment_id IS NULL", courseID, sectionID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Comment{}, err
	}
	return items, nil
}

func (r *CommentGormRepository) ListReplies(ctx context.Context, parentCommentID string) ([]model.Comment, error) {
	var items []model.Comment
	err := r.db.WithContext(ctx).
		Where("parent_comment_id = ?", parentCommentID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.Comment{}, err
	}
	return items, nil
}

func (r *CommentGormRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *CommentGormRepository) Delete(ctx context.Context, commentID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&model.Comment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
