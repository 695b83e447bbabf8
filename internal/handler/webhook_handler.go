package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"courseapp/internal/config"
	"courseapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WooCommerceからの注文Webhookを受ける。
type WebhookHandler struct {
	cfg config.Config
	uc  *usecase.OrderIngestionUsecase
}

// DI
func NewWebhookHandler(cfg config.Config, uc *usecase.OrderIngestionUsecase) *WebhookHandler {
	return &WebhookHandler{cfg: cfg, uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/webhooks/woocommerce", h.receiveOrder)
}

func (h *WebhookHandler) receiveOrder(c echo.Context) error {
	//署名検証に生のボディが必要なのでBindは使わない
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read body"})
	}

	//secretが設定されていれば必ず署名を検証する
	if h.cfg.WooWebhookSecret != "" {
		signature := c.Request().Header.Get("X-WC-Webhook-Signature")
		if !usecase.VerifyWebhookSignature(body, signature, h.cfg.WooWebhookSecret) {
			c.Logger().Warnf("webhook signature verification failed from %s", c.RealIP())
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid signature"})
		}
	}

	var payload usecase.WooOrderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	result, err := h.uc.Ingest(c.Request().Context(), payload)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
