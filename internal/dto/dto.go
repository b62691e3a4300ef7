package dto

type CreateOrderRequest struct {
	PlanTier  string `json:"plan_tier"`
	PanelName string `json:"panel_name"`
}

type CreateOrderResponse struct {
	OrderID          string `json:"order_id"`
	PlanTier         string `json:"plan_tier"`
	Amount           int    `json:"amount"`
	Status           string `json:"status"`
	PaymentReference string `json:"payment_reference"`
	QRISPayload      string `json:"qris_payload"`
	QRImageURL       string `json:"qr_image_url"`
}

type OrderStatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type ProvisionResponse struct {
	OrderID    string `json:"order_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	ServerID   int    `json:"server_id"`
	ServerName string `json:"server_name"`
	PanelURL   string `json:"panel_url"`
	RAM        string `json:"ram"`
	Disk       string `json:"disk"`
	CPU        string `json:"cpu"`
}

// PaymentWebhook is the payload the gateway pushes on transaction state
// changes. Amount may be absent for redeliveries.
type PaymentWebhook struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Amount  int    `json:"amount"`
}

type SyncOrdersResponse struct {
	TotalPending int `json:"total_pending"`
	Synced       int `json:"synced"`
	Enqueued     int `json:"enqueued"`
}
