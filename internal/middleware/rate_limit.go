package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// リクエスト回数を数える約束。インメモリ実装とRedis実装を差し替えられる。
type CounterStore interface {
	// キーのカウントを+1して、現在値とウィンドウの残り時間を返す。
	Incr(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

type RateLimitConfig struct {
	// 一般エンドポイントの上限（ウィンドウあたり）
	Max int
	// 認証系エンドポイントの上限（ブルートフォース対策で低め）
	AuthMax int
	Window  time.Duration
}

// クライアントIP＋パス種別をキーにした固定ウィンドウのレート制限。
// 超過時は429と Retry-After / X-RateLimit-* ヘッダを返す。
func RateLimit(store CounterStore, cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//storeが無い構成では素通し
			if store == nil {
				return next(c)
			}

			path := c.Request().URL.Path
			max := cfg.Max
			if isAuthPath(path) {
				max = cfg.AuthMax
			}

			key := clientIP(c) + ":" + pathClass(path)

			count, ttl, err := store.Incr(c.Request().Context(), key, cfg.Window)
			if err != nil {
				//カウンタ障害で全トラフィックを止めない
				c.Logger().Warnf("rate limit store error: %v", err)
				return next(c)
			}

			remaining := int64(max) - count
			if remaining < 0 {
				remaining = 0
			}

			if count > int64(max) {
				retryAfter := int(ttl.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				h := c.Response().Header()
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				h.Set("X-RateLimit-Limit", strconv.Itoa(max))
				h.Set("X-RateLimit-Remaining", "0")
				h.Set("X-RateLimit-Reset", time.Now().Add(ttl).UTC().Format(time.RFC3339))

				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(max))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			return next(c)
		}
	}
}

// 認証系は別枠で数える
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth")
}

// キーはパス丸ごとではなく種別で分ける（IDごとに別カウントにしない）
func pathClass(path string) string {
	if isAuthPath(path) {
		return "auth"
	}
	if strings.HasPrefix(path, "/admin") {
		return "admin"
	}
	if strings.HasPrefix(path, "/webhooks") {
		return "webhook"
	}
	return "api"
}

// X-Forwarded-For優先でクライアントIPを決める
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.RealIP()
}
