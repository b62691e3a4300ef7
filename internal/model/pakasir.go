package model

// Wire types for the Pakasir QRIS gateway. Field fallbacks mirror the
// gateway's habit of moving payloads between the envelope and a nested
// "payment"/"transaction" object depending on endpoint version.

type PakasirPayment struct {
	PaymentNumber string `json:"payment_number"`
	Code          string `json:"code"`
	QRISString    string `json:"qris_string"`
	QRContent     string `json:"qr_content"`
	ExpiryTime    string `json:"expiry_time"`
}

type PakasirCreateResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payment *PakasirPayment `json:"payment"`

	// Some responses inline the payment fields at the top level.
	PakasirPayment
}

type PakasirTransaction struct {
	OrderID string `json:"order_id"`
	Amount  int    `json:"amount"`
	Status  string `json:"status"`
}

type PakasirDetailResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Status      string              `json:"status"`
	Transaction *PakasirTransaction `json:"transaction"`
}
