package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
)

type AdminUserUsecase struct {
	users       repo.UserRepository
	enrollments repo.EnrollmentRepository
	auditRepo   repo.AuditLogRepository
	hasher      PasswordHasher
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewAdminUserUsecase(
	users repo.UserRepository,
	enrollments repo.EnrollmentRepository,
	auditRepo repo.AuditLogRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *AdminUserUsecase {
	return &AdminUserUsecase{
		users:       users,
		enrollments: enrollments,
		auditRepo:   auditRepo,
		hasher:      hasher,
		idGen:       idGen,
		clock:       clock,
	}
}

type AdminUserListOutput struct {
	Items []model.User `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *AdminUserUsecase) ListUsers(ctx context.Context, page int, limit int) (AdminUserListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	items, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return AdminUserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//hashは返さない
	for i := range items {
		items[i].PasswordHash = ""
	}

	return AdminUserListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

type AdminCreateUserInput struct {
	Email       string
	Password    string
	Role        string
	DisplayName string

	// 任意：作成と同時にコースを付与する
	CourseID    *string
	AccessUntil *time.Time
}

func (u *AdminUserUsecase) CreateUser(ctx context.Context, adminID string, in AdminCreateUserInput) (model.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if len(in.Password) < 8 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	// roleは閉じた集合。不正値はSTUDENTに落とす。
	role := model.RoleStudent
	if strings.EqualFold(in.Role, string(model.RoleAdmin)) {
		role = model.RoleAdmin
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already exists")
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//コース付与（任意）
	if in.CourseID != nil {
		enrollment := &model.Enrollment{
			ID:              u.idGen.NewID(),
			UserID:          user.ID,
			CourseID:        *in.CourseID,
			Status:          model.EnrollmentStatusActive,
			AccessGrantedAt: now,
			AccessUntil:     in.AccessUntil,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := u.enrollments.Upsert(ctx, enrollment); err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	u.writeAudit(ctx, adminID, model.AuditActionCreateUser, user.ID)

	safeUser := *user
	safeUser.PasswordHash = ""
	return safeUser, nil
}

func (u *AdminUserUsecase) DeleteUser(ctx context.Context, adminID string, userID string) error {
	//自分自身は消せない
	if adminID == userID {
		return NewHTTPError(http.StatusBadRequest, "cannot delete yourself")
	}

	//enrollmentを先に消す
	if err := u.enrollments.DeleteByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err := u.users.Delete(ctx, userID)
	if err == repo.ErrUserNotFound {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionDeleteUser, userID)
	return nil
}

func (u *AdminUserUsecase) writeAudit(ctx context.Context, actorID string, action model.AuditAction, targetUserID string) {
	_ = u.auditRepo.Create(ctx, &model.AuditLog{
		ID:           u.idGen.NewID(),
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		CreatedAt:    u.clock.Now(),
	})
}
