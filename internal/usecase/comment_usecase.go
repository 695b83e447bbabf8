package usecase

import (
	"context"
	"errors"
	"net/http"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
	"courseapp/internal/validator"
)

type CommentUsecase struct {
	comments repo.CommentRepository
	users    repo.UserRepository
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewCommentUsecase(
	comments repo.CommentRepository,
	users repo.UserRepository,
	idGen IDGenerator,
	clock Clock,
) *CommentUsecase {
	return &CommentUsecase{
		comments: comments,
		users:    users,
		idGen:    idGen,
		clock:    clock,
	}
}

// 表示用。匿名コメントは名前を出さない。
type CommentOutput struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	IsEdited        bool            `json:"is_edited"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	IsAdmin         bool            `json:"is_admin"`
	ParentCommentID *string         `json:"parent_comment_id"`
	IsAnonymous     bool            `json:"is_anonymous"`
	Replies         []CommentOutput `json:"replies,omitempty"`
}

func (u *CommentUsecase) ListComments(ctx context.Context, courseID string, sectionID string) ([]CommentOutput, error) {
	if err := validator.ValidateUUID(courseID); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	if err := validator.ValidateUUID(sectionID); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid section id")
	}

	comments, err := u.comments.ListBySection(ctx, courseID, sectionID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]CommentOutput, 0, len(comments))
	for _, c := range comments {
		item, err := u.toOutput(ctx, c)
		if err != nil {
			return nil, err
		}

		replies, err := u.comments.ListReplies(ctx, c.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		for _, rc := range replies {
			reply, err := u.toOutput(ctx, rc)
			if err != nil {
				return nil, err
			}
			item.Replies = append(item.Replies, reply)
		}

		out = append(out, item)
	}
	return out, nil
}

type CreateCommentInput struct {
	CourseID        string
	SectionID       string
	Content         string
	ParentCommentID *string
	IsAnonymous     bool
}

func (u *CommentUsecase) CreateComment(ctx context.Context, actor Actor, in CreateCommentInput) (CommentOutput, error) {
	if err := validator.ValidateUUID(in.CourseID); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	if err := validator.ValidateUUID(in.SectionID); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid section id")
	}
	if err := validator.ValidateCommentContent(in.Content); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid content")
	}

	// 1階層のみ：親が既に返信なら拒否
	if in.ParentCommentID != nil {
		if err := validator.ValidateUUID(*in.ParentCommentID); err != nil {
			return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid parent comment id")
		}
		parent, err := u.comments.FindByID(ctx, *in.ParentCommentID)
		if errors.Is(err, repo.ErrNotFound) {
			return CommentOutput{}, NewHTTPError(http.StatusNotFound, "parent comment not found")
		}
		if err != nil {
			return CommentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if parent.ParentCommentID != nil {
			return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "replies can be nested only one level")
		}
	}

	now := u.clock.Now()
	comment := &model.Comment{
		ID:              u.idGen.NewID(),
		CourseID:        in.CourseID,
		SectionID:       in.SectionID,
		UserID:          actor.ID,
		ParentCommentID: in.ParentCommentID,
		Content:         in.Content,
		IsAnonymous:     in.IsAnonymous,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.toOutput(ctx, *comment)
}

func (u *CommentUsecase) UpdateComment(ctx context.Context, actor Actor, commentID string, content string) (CommentOutput, error) {
	if err := validator.ValidateUUID(commentID); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}
	if err := validator.ValidateCommentContent(content); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid content")
	}

	comment, err := u.comments.FindByID(ctx, commentID)
	if errors.Is(err, repo.ErrNotFound) {
		return CommentOutput{}, NewHTTPError(http.StatusNotFound, "comment not found")
	}
	if err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//本人または管理者だけ
	if !Can(actor, VerbCommentEdit, comment.UserID) {
		return CommentOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	comment.Content = content
	comment.UpdatedAt = u.clock.Now()
	if err := u.comments.Update(ctx, &comment); err != nil {
		return CommentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.toOutput(ctx, comment)
}

func (u *CommentUsecase) DeleteComment(ctx context.Context, actor Actor, commentID string) error {
	if err := validator.ValidateUUID(commentID); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid comment id")
	}

	comment, err := u.comments.FindByID(ctx, commentID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "comment not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !Can(actor, VerbCommentDelete, comment.UserID) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.comments.Delete(ctx, commentID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CommentUsecase) toOutput(ctx context.Context, c model.Comment) (CommentOutput, error) {
	name := "Anonyymi"
	isAdmin := false

	if !c.IsAnonymous {
		user, err := u.users.FindByID(ctx, c.UserID)
		if err != nil {
			return CommentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if user != nil {
			if user.DisplayName != "" {
				name = user.DisplayName
			} else {
				name = "Käyttäjä"
			}
			isAdmin = user.Role == model.RoleAdmin
		} else {
			name = "Käyttäjä"
		}
	}

	return CommentOutput{
		ID:              c.ID,
		Content:         c.Content,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		IsEdited:        c.UpdatedAt.After(c.CreatedAt),
		UserID:          c.UserID,
		UserName:        name,
		IsAdmin:         isAdmin,
		ParentCommentID: c.ParentCommentID,
		IsAnonymous:     c.IsAnonymous,
	}, nil
}
