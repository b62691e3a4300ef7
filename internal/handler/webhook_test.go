package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"novapanel/internal/dto"
	"novapanel/internal/model"
	"novapanel/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPaymentWebhookAck(t *testing.T) {
	var got *dto.PaymentWebhook
	svc := &mockOrderService{
		webhookFn: func(ctx context.Context, payload *dto.PaymentWebhook) error {
			got = payload
			return nil
		},
	}
	h := NewWebhookHandler(svc, zerolog.Nop())

	rec := doRequest(h.PaymentWebhook, http.MethodPost, "/api/webhooks/payment",
		`{"order_id":"NOVA_1","status":"PAID","amount":1000}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"order_id":"NOVA_1"`)
	assert.Equal(t, "NOVA_1", got.OrderID)
	assert.Equal(t, "PAID", got.Status)
	assert.Equal(t, 1000, got.Amount)
}

func TestPaymentWebhookInvalidBody(t *testing.T) {
	h := NewWebhookHandler(&mockOrderService{}, zerolog.Nop())

	rec := doRequest(h.PaymentWebhook, http.MethodPost, "/api/webhooks/payment",
		`{not json`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentWebhookMissingOrderID(t *testing.T) {
	svc := &mockOrderService{
		webhookFn: func(ctx context.Context, payload *dto.PaymentWebhook) error {
			return service.ErrInvalidWebhook
		},
	}
	h := NewWebhookHandler(svc, zerolog.Nop())

	rec := doRequest(h.PaymentWebhook, http.MethodPost, "/api/webhooks/payment",
		`{"status":"PAID"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentWebhookAcksDespiteDownstreamFailure(t *testing.T) {
	svc := &mockOrderService{
		webhookFn: func(ctx context.Context, payload *dto.PaymentWebhook) error {
			return errors.New("store unavailable")
		},
	}
	h := NewWebhookHandler(svc, zerolog.Nop())

	rec := doRequest(h.PaymentWebhook, http.MethodPost, "/api/webhooks/payment",
		`{"order_id":"NOVA_1","status":"`+string(model.StatusPaid)+`"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}
