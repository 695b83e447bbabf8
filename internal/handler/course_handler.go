package handler

import (
	"net/http"

	"courseapp/internal/config"
	"courseapp/internal/middleware"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /courses の公開API と /my-courses
type CourseHandler struct {
	cfg config.Config
	uc  *usecase.CourseUsecase
}

// DI
func NewCourseHandler(cfg config.Config, uc *usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{cfg: cfg, uc: uc}
}

// 公開コースのルートを登録
func (h *CourseHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/courses", h.list)
	e.GET("/courses/:id", h.detail)

	//受講中コースはJWT必須
	e.GET("/my-courses", h.myCourses, middleware.AuthJWT(h.cfg))
}

func (h *CourseHandler) list(c echo.Context) error {
	items, err := h.uc.ListPublicCourses(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"courses": items})
}

func (h *CourseHandler) detail(c echo.Context) error {
	out, err := h.uc.GetCourseDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CourseHandler) myCourses(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyCourses(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"courses": out})
}
