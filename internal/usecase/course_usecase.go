package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
)

type CourseUsecase struct {
	courses     repo.CourseRepository
	sections    repo.SectionRepository
	enrollments repo.EnrollmentRepository
	auditRepo   repo.AuditLogRepository
	idGen       IDGenerator
	clock       Clock
}

// DI
func NewCourseUsecase(
	courses repo.CourseRepository,
	sections repo.SectionRepository,
	enrollments repo.EnrollmentRepository,
	auditRepo repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
) *CourseUsecase {
	return &CourseUsecase{
		courses:     courses,
		sections:    sections,
		enrollments: enrollments,
		auditRepo:   auditRepo,
		idGen:       idGen,
		clock:       clock,
	}
}

type CourseWithSections struct {
	model.Course
	Sections []model.CourseSection `json:"sections"`
}

// 公開中のコース一覧
func (u *CourseUsecase) ListPublicCourses(ctx context.Context) ([]model.Course, error) {
	items, err := u.courses.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CourseUsecase) GetCourseDetail(ctx context.Context, courseID string) (CourseWithSections, error) {
	course, err := u.courses.FindByID(ctx, courseID)
	if errors.Is(err, repo.ErrNotFound) {
		return CourseWithSections{}, NewHTTPError(http.StatusNotFound, "course not found")
	}
	if err != nil {
		return CourseWithSections{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	sections, err := u.sections.ListByCourseID(ctx, courseID)
	if err != nil {
		return CourseWithSections{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CourseWithSections{Course: course, Sections: sections}, nil
}

type MyCourseOutput struct {
	Course     model.Course     `json:"course"`
	Enrollment model.Enrollment `json:"enrollment"`
}

// 受講中コース一覧（enrollment + course）
func (u *CourseUsecase) ListMyCourses(ctx context.Context, userID string) ([]MyCourseOutput, error) {
	enrollments, err := u.enrollments.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]MyCourseOutput, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Status != model.EnrollmentStatusActive {
			continue
		}
		course, err := u.courses.FindByID(ctx, e.CourseID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = append(out, MyCourseOutput{Course: course, Enrollment: e})
	}
	return out, nil
}

type AdminCourseInput struct {
	Title         string
	Description   string
	Price         *int64
	DurationHours *int64
	IsActive      bool
}

func (u *CourseUsecase) AdminCreateCourse(ctx context.Context, adminID string, in AdminCourseInput) (model.Course, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return model.Course{}, NewHTTPError(http.StatusBadRequest, "title and description are required")
	}

	now := u.clock.Now()
	course := &model.Course{
		ID:            u.idGen.NewID(),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Price:         in.Price,
		DurationHours: in.DurationHours,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.courses.Create(ctx, course); err != nil {
		return model.Course{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionCreateCourse, model.AuditResourceCourse, course.ID, course)
	return *course, nil
}

func (u *CourseUsecase) AdminUpdateCourse(ctx context.Context, adminID string, courseID string, in AdminCourseInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return NewHTTPError(http.StatusBadRequest, "title and description are required")
	}

	course, err := u.courses.FindByID(ctx, courseID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "course not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	course.Title = strings.TrimSpace(in.Title)
	course.Description = in.Description
	course.Price = in.Price
	course.DurationHours = in.DurationHours
	course.IsActive = in.IsActive
	course.UpdatedAt = u.clock.Now()

	if err := u.courses.Update(ctx, &course); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateCourse, model.AuditResourceCourse, course.ID, course)
	return nil
}

func (u *CourseUsecase) AdminDeleteCourse(ctx context.Context, adminID string, courseID string) error {
	err := u.courses.Delete(ctx, courseID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "course not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionDeleteCourse, model.AuditResourceCourse, courseID, nil)
	return nil
}

func (u *CourseUsecase) AdminPublishCourse(ctx context.Context, adminID string, courseID string, active bool) error {
	err := u.courses.SetActive(ctx, courseID, active)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "course not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionPublishCourse, model.AuditResourceCourse, courseID, map[string]bool{"is_active": active})
	return nil
}

type AdminSectionInput struct {
	CourseID   string
	Title      string
	Content    string
	VideoURL   string
	OrderIndex int
}

func (u *CourseUsecase) AdminCreateSection(ctx context.Context, adminID string, in AdminSectionInput) (model.CourseSection, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.CourseSection{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}

	//コース存在チェック
	if _, err := u.courses.FindByID(ctx, in.CourseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CourseSection{}, NewHTTPError(http.StatusNotFound, "course not found")
		}
		return model.CourseSection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	section := &model.CourseSection{
		ID:         u.idGen.NewID(),
		CourseID:   in.CourseID,
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		VideoURL:   in.VideoURL,
		OrderIndex: in.OrderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.sections.Create(ctx, section); err != nil {
		return model.CourseSection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateCourse, model.AuditResourceSection, section.ID, section)
	return *section, nil
}

func (u *CourseUsecase) AdminUpdateSection(ctx context.Context, adminID string, sectionID string, in AdminSectionInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewHTTPError(http.StatusBadRequest, "title is required")
	}

	section, err := u.sections.FindByID(ctx, sectionID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "section not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	section.Title = strings.TrimSpace(in.Title)
	section.Content = in.Content
	section.VideoURL = in.VideoURL
	section.OrderIndex = in.OrderIndex
	section.UpdatedAt = u.clock.Now()

	if err := u.sections.Update(ctx, &section); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateCourse, model.AuditResourceSection, section.ID, section)
	return nil
}

func (u *CourseUsecase) AdminReorderSections(ctx context.Context, adminID string, courseID string, orders []repo.SectionOrder) error {
	if len(orders) == 0 {
		return NewHTTPError(http.StatusBadRequest, "orders are required")
	}

	err := u.sections.Reorder(ctx, courseID, orders)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "section not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateCourse, model.AuditResourceCourse, courseID, orders)
	return nil
}

func (u *CourseUsecase) AdminDeleteSection(ctx context.Context, adminID string, sectionID string) error {
	err := u.sections.Delete(ctx, sectionID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "section not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateCourse, model.AuditResourceSection, sectionID, nil)
	return nil
}

// 監査ログ。失敗しても本処理は止めない。
func (u *CourseUsecase) writeAudit(ctx context.Context, actorID string, action model.AuditAction, resource model.AuditResourceType, resourceID string, detail interface{}) {
	detailJSON := ""
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			detailJSON = string(b)
		}
	}

	_ = u.auditRepo.Create(ctx, &model.AuditLog{
		ID:           u.idGen.NewID(),
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		DetailJSON:   detailJSON,
		CreatedAt:    u.clock.Now(),
	})
}
