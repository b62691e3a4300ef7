package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"novapanel/internal/config"
	"novapanel/internal/model"
)

type PakasirClient interface {
	CreateQRISPayment(ctx context.Context, orderID string, amount int) (*CreatePaymentResponse, error)
	CheckStatus(ctx context.Context, orderID string) (*PaymentStatus, error)
	QRImageURL(qrisPayload string) string
}

type pakasirClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	project    string
	apiKey     string
	qrBaseURL  string
}

type CreatePaymentResponse struct {
	PaymentNumber string
	QRISPayload   string
}

type PaymentStatus struct {
	RawStatus string
	Status    model.OrderStatus
	Amount    int
}

func NewPakasirClient(cfg *config.Pakasir) PakasirClient {
	return &pakasirClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		project:    cfg.Project,
		apiKey:     cfg.APIKey,
		qrBaseURL:  cfg.QRBaseURL,
	}
}

func (c *pakasirClientImpl) CreateQRISPayment(ctx context.Context, orderID string, amount int) (*CreatePaymentResponse, error) {
	payload := map[string]interface{}{
		"project":  c.project,
		"api_key":  c.apiKey,
		"order_id": orderID,
		"amount":   amount,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/api/transactioncreate/qris",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pakasir error %d: %s", resp.StatusCode, string(b))
	}

	var result model.PakasirCreateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode pakasir response: %w", err)
	}

	payment := result.Payment
	if payment == nil {
		if !result.Success {
			return nil, fmt.Errorf("pakasir rejected payment: %s", result.Message)
		}
		payment = &result.PakasirPayment
	}

	number := payment.PaymentNumber
	if number == "" {
		number = payment.Code
	}
	qris := firstNonEmpty(payment.QRISString, payment.PaymentNumber, payment.QRContent)
	if qris == "" {
		return nil, fmt.Errorf("pakasir response missing qris payload")
	}

	return &CreatePaymentResponse{
		PaymentNumber: number,
		QRISPayload:   qris,
	}, nil
}

func (c *pakasirClientImpl) CheckStatus(ctx context.Context, orderID string) (*PaymentStatus, error) {
	q := url.Values{}
	q.Set("project", c.project)
	q.Set("amount", "0")
	q.Set("order_id", orderID)
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseApiURL+"/api/transactiondetail?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pakasir error %d: %s", resp.StatusCode, string(b))
	}

	var result model.PakasirDetailResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode pakasir response: %w", err)
	}

	raw := result.Status
	amount := 0
	if result.Transaction != nil {
		raw = result.Transaction.Status
		amount = result.Transaction.Amount
	}

	return &PaymentStatus{
		RawStatus: raw,
		Status:    model.NormalizeStatus(raw),
		Amount:    amount,
	}, nil
}

// QRImageURL builds a scannable image URL for a QRIS payload, rendered by the
// external chart service.
func (c *pakasirClientImpl) QRImageURL(qrisPayload string) string {
	q := url.Values{}
	q.Set("text", qrisPayload)
	q.Set("size", "300")
	q.Set("margin", "1")
	return c.qrBaseURL + "?" + q.Encode()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
