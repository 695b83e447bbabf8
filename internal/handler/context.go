package handler

import (
	"courseapp/internal/domain/model"
	"courseapp/internal/middleware"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthJWTがcontextに入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func getUserRoleFromContext(c echo.Context) (model.Role, bool) {
	raw := c.Get(middleware.CtxUserRoleKey)
	role, ok := raw.(string)
	if !ok || role == "" {
		return "", false
	}
	return model.Role(role), true
}

// 権限チェックに渡すActorをcontextから組み立てる
func actorFromContext(c echo.Context) (usecase.Actor, bool) {
	id, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}
	role, ok := getUserRoleFromContext(c)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: id, Role: role}, true
}
