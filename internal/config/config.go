package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	// WooCommerce Webhookの署名シークレット。設定されていれば必ず検証する。
	// 未設定（開発用）のときだけ検証をスキップする。
	WooWebhookSecret string

	ResendAPIKey string // Resend APIキー
	MailFrom     string // 送信元アドレス
	AppURL       string // フロントURL（メール内リンクで使う）

	GoEnv          string   // dev/prod
	AllowedOrigins []string // CORS許可オリジン

	RedisAddr string // 空ならインメモリのレート制限にフォールバック

	RateLimitMax     int           // 一般エンドポイントの上限
	RateLimitAuthMax int           // 認証系エンドポイントの上限
	RateLimitWindow  time.Duration // ウィンドウ幅
}

// Loadは環境変数
func Load() (Config, error) {
	rlMax, err := atoiDefault("RATE_LIMIT_MAX", 100)
	if err != nil {
		return Config{}, err
	}
	rlAuthMax, err := atoiDefault("RATE_LIMIT_AUTH_MAX", 10)
	if err != nil {
		return Config{}, err
	}
	rlWindowSec, err := atoiDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		WooWebhookSecret: os.Getenv("WOOCOMMERCE_WEBHOOK_SECRET"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		AppURL:       os.Getenv("APP_URL"),

		GoEnv:          os.Getenv("GO_ENV"),
		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		RateLimitMax:     rlMax,
		RateLimitAuthMax: rlAuthMax,
		RateLimitWindow:  time.Duration(rlWindowSec) * time.Second,
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MailFrom == "" {
		return Config{}, fmt.Errorf("MAIL_FROM is required")
	}
	if cfg.AppURL == "" {
		return Config{}, fmt.Errorf("APP_URL is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if len(cfg.AllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("ALLOWED_ORIGINS is required")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
