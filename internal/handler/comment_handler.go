package handler

import (
	"net/http"

	"courseapp/internal/config"
	"courseapp/internal/middleware"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CommentHandler struct {
	cfg config.Config
	uc  *usecase.CommentUsecase
}

// DI
func NewCommentHandler(cfg config.Config, uc *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{cfg: cfg, uc: uc}
}

func (h *CommentHandler) RegisterRoutes(e *echo.Echo) {
	//一覧は未ログインでも見られる
	e.GET("/comments", h.list)

	//書き込み系はJWT必須
	auth := middleware.AuthJWT(h.cfg)
	e.POST("/comments", h.create, auth)
	e.PUT("/comments/:id", h.update, auth)
	e.DELETE("/comments/:id", h.delete, auth)
}

func (h *CommentHandler) list(c echo.Context) error {
	courseID := c.QueryParam("course_id")
	sectionID := c.QueryParam("section_id")

	out, err := h.uc.ListComments(c.Request().Context(), courseID, sectionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"comments": out})
}

type createCommentRequest struct {
	CourseID        string  `json:"course_id"`
	SectionID       string  `json:"section_id"`
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id"`
	IsAnonymous     bool    `json:"is_anonymous"`
}

func (h *CommentHandler) create(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateComment(c.Request().Context(), actor, usecase.CreateCommentInput{
		CourseID:        req.CourseID,
		SectionID:       req.SectionID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
		IsAnonymous:     req.IsAnonymous,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"comment": out})
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (h *CommentHandler) update(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateComment(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"comment": out})
}

func (h *CommentHandler) delete(c echo.Context) error {
	actor, ok := actorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DeleteComment(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
