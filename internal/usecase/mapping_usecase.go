package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"
	"courseapp/internal/validator"
)

type SkuMappingUsecase struct {
	mappings  repo.SkuMappingRepository
	courses   repo.CourseRepository
	auditRepo repo.AuditLogRepository
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewSkuMappingUsecase(
	mappings repo.SkuMappingRepository,
	courses repo.CourseRepository,
	auditRepo repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
) *SkuMappingUsecase {
	return &SkuMappingUsecase{
		mappings:  mappings,
		courses:   courses,
		auditRepo: auditRepo,
		idGen:     idGen,
		clock:     clock,
	}
}

func (u *SkuMappingUsecase) List(ctx context.Context) ([]model.SkuMapping, error) {
	items, err := u.mappings.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type SkuMappingInput struct {
	Sku         string
	CourseID    string
	ProductName string
	Price       *int64
	IsActive    bool
}

func (u *SkuMappingUsecase) Create(ctx context.Context, adminID string, in SkuMappingInput) (model.SkuMapping, error) {
	if err := validator.ValidateSku(in.Sku); err != nil {
		return model.SkuMapping{}, NewHTTPError(http.StatusBadRequest, "invalid sku")
	}
	if err := validator.ValidateUUID(in.CourseID); err != nil {
		return model.SkuMapping{}, NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	//コース存在チェック
	if _, err := u.courses.FindByID(ctx, in.CourseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.SkuMapping{}, NewHTTPError(http.StatusNotFound, "course not found")
		}
		return model.SkuMapping{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now()
	mapping := &model.SkuMapping{
		ID:          u.idGen.NewID(),
		Sku:         strings.TrimSpace(in.Sku),
		CourseID:    in.CourseID,
		ProductName: strings.TrimSpace(in.ProductName),
		Price:       in.Price,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.mappings.Create(ctx, mapping); err != nil {
		return model.SkuMapping{}, NewHTTPError(http.StatusConflict, "sku already mapped")
	}

	u.writeAudit(ctx, adminID, mapping.ID)
	return *mapping, nil
}

func (u *SkuMappingUsecase) Update(ctx context.Context, adminID string, mappingID string, in SkuMappingInput) error {
	if err := validator.ValidateUUID(mappingID); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validator.ValidateSku(in.Sku); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid sku")
	}
	if err := validator.ValidateUUID(in.CourseID); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	mapping, err := u.mappings.FindByID(ctx, mappingID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "mapping not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	mapping.Sku = strings.TrimSpace(in.Sku)
	mapping.CourseID = in.CourseID
	mapping.ProductName = strings.TrimSpace(in.ProductName)
	mapping.Price = in.Price
	mapping.IsActive = in.IsActive
	mapping.UpdatedAt = u.clock.Now()

	if err := u.mappings.Update(ctx, &mapping); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, mapping.ID)
	return nil
}

func (u *SkuMappingUsecase) Delete(ctx context.Context, adminID string, mappingID string) error {
	if err := validator.ValidateUUID(mappingID); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.mappings.Delete(ctx, mappingID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "mapping not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminID, mappingID)
	return nil
}

func (u *SkuMappingUsecase) writeAudit(ctx context.Context, actorID string, mappingID string) {
	_ = u.auditRepo.Create(ctx, &model.AuditLog{
		ID:           u.idGen.NewID(),
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateMapping,
		ResourceType: model.AuditResourceSkuMapping,
		ResourceID:   mappingID,
		CreatedAt:    u.clock.Now(),
	})
}
