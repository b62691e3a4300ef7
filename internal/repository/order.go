package repository

import (
	"context"
	"time"

	"novapanel/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// MarkProvisioned flips panel_provisioned false→true and stores the
	// provisioning result in one conditioned update. Returns
	// gorm.ErrRecordNotFound when no unprovisioned row matched, which callers
	// treat as "already provisioned".
	MarkProvisioned(ctx context.Context, orderID string, result *model.ProvisioningResult) error
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) MarkProvisioned(ctx context.Context, orderID string, res *model.ProvisioningResult) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND panel_provisioned = ?", orderID, false).
		Updates(map[string]interface{}{
			"panel_provisioned": true,
			"panel_user_id":     res.UserID,
			"panel_username":    res.Username,
			"panel_password":    res.Password,
			"panel_email":       res.Email,
			"server_id":         res.ServerID,
			"server_identifier": res.ServerIdentifier,
			"server_name":       res.ServerName,
			"panel_url":         res.PanelURL,
			"ram_mb":            res.RAMMB,
			"disk_mb":           res.DiskMB,
			"cpu_percent":       res.CPUPercent,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepoImpl) ListByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
