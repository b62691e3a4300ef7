package model

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusPaid    OrderStatus = "paid"
	StatusExpired OrderStatus = "expired"
	StatusError   OrderStatus = "error"
)

// NormalizeStatus maps the gateway's status vocabulary onto ours. The mapping
// is case-insensitive; anything unrecognized counts as still pending.
func NormalizeStatus(raw string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "success", "settled":
		return StatusPaid
	case "expired", "failed":
		return StatusExpired
	default:
		return StatusPending
	}
}

type Order struct {
	OrderID   string `gorm:"primaryKey;size:64;not null"`
	PanelName string `gorm:"size:64"`
	PlanTier  string `gorm:"size:16;index;not null"`
	Amount    int    `gorm:"not null"` // whole rupiah
	Status    string `gorm:"size:16;index;not null"`

	PaymentReference string `gorm:"size:128"` // gateway payment number
	QRISPayload      string `gorm:"type:text"`

	PanelProvisioned bool `gorm:"not null"`

	// Set once, on successful provisioning.
	PanelUserID      int
	PanelUsername    string `gorm:"size:32"`
	PanelPassword    string `gorm:"size:64"`
	PanelEmail       string `gorm:"size:64"`
	ServerID         int
	ServerIdentifier string `gorm:"size:64"`
	ServerName       string `gorm:"size:64"`
	PanelURL         string `gorm:"size:255"`
	RAMMB            int
	DiskMB           int
	CPUPercent       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProvisioningResult carries everything the panel API handed back for one
// order: the created account plus the created server.
type ProvisioningResult struct {
	UserID   int
	Username string
	Password string
	Email    string

	ServerID         int
	ServerIdentifier string
	ServerName       string
	PanelURL         string
	RAMMB            int
	DiskMB           int
	CPUPercent       int
}
