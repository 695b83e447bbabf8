package handler

import (
	"net/http"
	"strconv"
	"time"

	"courseapp/internal/config"
	"courseapp/internal/middleware"
	repo "courseapp/internal/repository"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	cfg   config.Config
	uc    *usecase.AdminUserUsecase
	users repo.UserRepository
}

// DI
func NewAdminUserHandler(cfg config.Config, uc *usecase.AdminUserUsecase, users repo.UserRepository) *AdminUserHandler {
	return &AdminUserHandler{cfg: cfg, uc: uc, users: users}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/admin/users",
		middleware.AuthJWT(h.cfg),
		middleware.ActiveUserGuard(h.users),
		middleware.AdminRoleGuard(),
	)

	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type adminCreateUserRequest struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	Role        string     `json:"role"`
	DisplayName string     `json:"display_name"`
	CourseID    *string    `json:"course_id"`
	AccessUntil *time.Time `json:"access_until"`
}

func (h *AdminUserHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req adminCreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	user, err := h.uc.CreateUser(c.Request().Context(), adminID, usecase.AdminCreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DisplayName: req.DisplayName,
		CourseID:    req.CourseID,
		AccessUntil: req.AccessUntil,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"user": user})
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteUser(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
