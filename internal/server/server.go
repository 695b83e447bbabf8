package server

import (
	"net/http"

	"courseapp/internal/config"
	"courseapp/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RouteRegistrar は各ハンドラがルートを登録するための約束。
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

// New はechoインスタンスを組み立てて返す。
func New(cfg config.Config, rlStore middleware.CounterStore, handlers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	//CORS（許可オリジンは環境変数から）
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimit(rlStore, middleware.RateLimitConfig{
		Max:     cfg.RateLimitMax,
		AuthMax: cfg.RateLimitAuthMax,
		Window:  cfg.RateLimitWindow,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, h := range handlers {
		h.RegisterRoutes(e)
	}

	return e
}

// Start はサーバーを起動する。
func Start(e *echo.Echo, port string) error {
	addr := port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
