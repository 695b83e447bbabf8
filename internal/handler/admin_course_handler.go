package handler

import (
	"net/http"

	"courseapp/internal/config"
	"courseapp/internal/middleware"
	repo "courseapp/internal/repository"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

// /admin/courses 配下。全ルートにADMINガードをかける。
type AdminCourseHandler struct {
	cfg   config.Config
	uc    *usecase.CourseUsecase
	users repo.UserRepository
}

// DI
func NewAdminCourseHandler(cfg config.Config, uc *usecase.CourseUsecase, users repo.UserRepository) *AdminCourseHandler {
	return &AdminCourseHandler{cfg: cfg, uc: uc, users: users}
}

func (h *AdminCourseHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin/courses",
		middleware.AuthJWT(h.cfg),
		middleware.ActiveUserGuard(h.users),
		middleware.AdminRoleGuard(),
	)

	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PUT("/:id/publish", h.publish)

	g.POST("/:id/sections", h.createSection)
	g.PUT("/:id/sections/reorder", h.reorderSections)

	sg := e.Group("/admin/sections",
		middleware.AuthJWT(h.cfg),
		middleware.ActiveUserGuard(h.users),
		middleware.AdminRoleGuard(),
	)
	sg.PUT("/:id", h.updateSection)
	sg.DELETE("/:id", h.deleteSection)
}

type adminCourseRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         *int64 `json:"price"`
	DurationHours *int64 `json:"duration_hours"`
	IsActive      bool   `json:"is_active"`
}

func (h *AdminCourseHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req adminCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	course, err := h.uc.AdminCreateCourse(c.Request().Context(), adminID, usecase.AdminCourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"course": course})
}

func (h *AdminCourseHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req adminCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.AdminUpdateCourse(c.Request().Context(), adminID, c.Param("id"), usecase.AdminCourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		DurationHours: req.DurationHours,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminCourseHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeleteCourse(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

type publishRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *AdminCourseHandler) publish(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req publishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminPublishCourse(c.Request().Context(), adminID, c.Param("id"), req.IsActive); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

type adminSectionRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	VideoURL   string `json:"video_url"`
	OrderIndex int    `json:"order_index"`
}

func (h *AdminCourseHandler) createSection(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req adminSectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	section, err := h.uc.AdminCreateSection(c.Request().Context(), adminID, usecase.AdminSectionInput{
		CourseID:   c.Param("id"),
		Title:      req.Title,
		Content:    req.Content,
		VideoURL:   req.VideoURL,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"section": section})
}

func (h *AdminCourseHandler) updateSection(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req adminSectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.AdminUpdateSection(c.Request().Context(), adminID, c.Param("id"), usecase.AdminSectionInput{
		Title:      req.Title,
		Content:    req.Content,
		VideoURL:   req.VideoURL,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

type reorderRequest struct {
	Orders []reorderEntry `json:"orders"`
}

type reorderEntry struct {
	SectionID  string `json:"section_id"`
	OrderIndex int    `json:"order_index"`
}

func (h *AdminCourseHandler) reorderSections(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	orders := make([]repo.SectionOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, repo.SectionOrder{SectionID: o.SectionID, OrderIndex: o.OrderIndex})
	}

	if err := h.uc.AdminReorderSections(c.Request().Context(), adminID, c.Param("id"), orders); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "reordered"})
}

func (h *AdminCourseHandler) deleteSection(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeleteSection(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
