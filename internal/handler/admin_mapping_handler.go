package handler

import (
	"net/http"

	"courseapp/internal/config"
	"courseapp/internal/middleware"
	repo "courseapp/internal/repository"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SKU→コースの対応表を管理するadmin API。
type AdminMappingHandler struct {
	cfg   config.Config
	uc    *usecase.SkuMappingUsecase
	users repo.UserRepository
}

// DI
func NewAdminMappingHandler(cfg config.Config, uc *usecase.SkuMappingUsecase, users repo.UserRepository) *AdminMappingHandler {
	return &AdminMappingHandler{cfg: cfg, uc: uc, users: users}
}

func (h *AdminMappingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin/sku-mappings",
		middleware.AuthJWT(h.cfg),
		middleware.ActiveUserGuard(h.users),
		middleware.AdminRoleGuard(),
	)

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *AdminMappingHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"mappings": items})
}

type skuMappingRequest struct {
	Sku         string `json:"sku"`
	CourseID    string `json:"course_id"`
	ProductName string `json:"product_name"`
	Price       *int64 `json:"price"`
	IsActive    bool   `json:"is_active"`
}

func (h *AdminMappingHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req skuMappingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	mapping, err := h.uc.Create(c.Request().Context(), adminID, usecase.SkuMappingInput{
		Sku:         req.Sku,
		CourseID:    req.CourseID,
		ProductName: req.ProductName,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"mapping": mapping})
}

func (h *AdminMappingHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req skuMappingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.Update(c.Request().Context(), adminID, c.Param("id"), usecase.SkuMappingInput{
		Sku:         req.Sku,
		CourseID:    req.CourseID,
		ProductName: req.ProductName,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminMappingHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
