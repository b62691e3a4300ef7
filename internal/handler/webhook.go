package handler

import (
	"errors"
	"net/http"

	"novapanel/internal/dto"
	"novapanel/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type WebhookHandler struct {
	orderService service.OrderService
	log          zerolog.Logger
}

func NewWebhookHandler(orderService service.OrderService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		orderService: orderService,
		log:          log,
	}
}

// PaymentWebhook acknowledges every structurally valid delivery with 200,
// whatever happens downstream, so the gateway does not retry forever.
func (h *WebhookHandler) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.PaymentWebhook
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid webhook body")
	}

	if err := h.orderService.HandleWebhook(ctx, &payload); err != nil {
		if errors.Is(err, service.ErrInvalidWebhook) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.log.Error().
			Err(err).
			Str("order_id", payload.OrderID).
			Msg("webhook processing failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"order_id": payload.OrderID,
	})
}
